package attack

import (
	"fmt"

	"github.com/antoonpurnal/clangover/ring"
)

// Codec compresses and packs a ciphertext (u, v). [kyber.Parameters] implements it.
type Codec interface {
	K() int
	EncodeCiphertext(u ring.Vector, v *ring.Poly) ([]byte, error)
}

// Crafter builds the chosen ciphertexts of a target coefficient.
type Crafter struct {
	codec Codec
	u     ring.Vector
	v     *ring.Poly
}

// NewCrafter creates a new Crafter encoding with codec.
func NewCrafter(codec Codec) *Crafter {
	return &Crafter{
		codec: codec,
		u:     ring.NewVector(codec.K()),
		v:     ring.NewPoly(),
	}
}

// Reference returns the all-zero reference ciphertext, whose decrypted message is 0.
func (c *Crafter) Reference() ([]byte, error) {
	c.u.Zero()
	c.v.Zero()
	ct, err := c.codec.EncodeCiphertext(c.u, c.v)
	if err != nil {
		return nil, fmt.Errorf("cannot Reference: %w", err)
	}
	return ct, nil
}

// Craft returns the NbClasses ciphertexts of coefficient index: for class c, u is
// zero except for coefficient [Position](index) of polynomial [Block](index) set to
// the u-magnitude of c, and v is zero except for its constant coefficient set to
// the v-magnitude of c.
func (c *Crafter) Craft(index int) (cts [][]byte, err error) {

	if total := c.codec.K() * ring.N; index < 0 || index >= total {
		return nil, fmt.Errorf("cannot Craft: index %d is not in [0, %d)", index, total)
	}

	block, position := Block(index), Position(index)

	cts = make([][]byte, NbClasses)
	for class := range cts {
		c.u.Zero()
		c.v.Zero()
		c.u[block].Coeffs[position], c.v.Coeffs[0] = Magnitudes(class)
		if cts[class], err = c.codec.EncodeCiphertext(c.u, c.v); err != nil {
			return nil, fmt.Errorf("cannot Craft: %w", err)
		}
	}

	return cts, nil
}

// Craft returns the NbClasses chosen ciphertexts of coefficient index encoded with codec.
func Craft(codec Codec, index int) ([][]byte, error) {
	return NewCrafter(codec).Craft(index)
}
