package kyber

import (
	"fmt"

	"github.com/antoonpurnal/clangover/ring"
)

// CompressU compresses u to Du bits per coefficient and packs it.
// u is not modified.
func (p Parameters) CompressU(u ring.Vector) ([]byte, error) {
	if len(u) != p.k {
		return nil, fmt.Errorf("cannot CompressU: vector has rank %d but K=%d", len(u), p.k)
	}
	tmp := u.CopyNew()
	tmp.Compress(p.du)
	out := make([]byte, p.CompressedUSize())
	tmp.Encode(out, p.du)
	return out, nil
}

// CompressV compresses v to Dv bits per coefficient and packs it.
// v is not modified.
func (p Parameters) CompressV(v *ring.Poly) []byte {
	tmp := v.CopyNew()
	tmp.Compress(p.dv)
	out := make([]byte, p.CompressedVSize())
	tmp.Encode(out, p.dv)
	return out
}

// EncodeCiphertext returns the ciphertext CompressU(u) ‖ CompressV(v).
func (p Parameters) EncodeCiphertext(u ring.Vector, v *ring.Poly) ([]byte, error) {
	cu, err := p.CompressU(u)
	if err != nil {
		return nil, fmt.Errorf("cannot EncodeCiphertext: %w", err)
	}
	return append(cu, p.CompressV(v)...), nil
}

// DecodeCiphertext unpacks and decompresses ct into u and v.
// u must have rank K.
func (p Parameters) DecodeCiphertext(ct []byte, u ring.Vector, v *ring.Poly) (err error) {
	if len(ct) != p.CiphertextSize() {
		return fmt.Errorf("cannot DecodeCiphertext: ciphertext has %d bytes but %s expects %d", len(ct), p.name, p.CiphertextSize())
	}
	if len(u) != p.k {
		return fmt.Errorf("cannot DecodeCiphertext: vector has rank %d but K=%d", len(u), p.k)
	}

	rem, err := u.Decode(ct, p.du)
	if err != nil {
		return fmt.Errorf("cannot DecodeCiphertext: %w", err)
	}
	u.Decompress(p.du)

	if _, err = v.Decode(rem, p.dv); err != nil {
		return fmt.Errorf("cannot DecodeCiphertext: %w", err)
	}
	v.Decompress(p.dv)

	return nil
}
