package kyber

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/antoonpurnal/clangover/ring"
)

const (
	// SymBytes is the size in bytes of seeds, hashes and shared secrets.
	SymBytes = 32

	// MessageSize is the size in bytes of an IND-CPA plaintext.
	MessageSize = ring.N / 8

	// SharedSecretSize is the size in bytes of a shared secret.
	SharedSecretSize = 32

	// PolySize is the size in bytes of a polynomial packed on 12 bits per coefficient.
	PolySize = ring.LogQ * ring.N / 8
)

// ParametersLiteral is a literal representation of Kyber parameters.
// It has public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The [NewParametersFromLiteral] function is used to
// generate the actual checked parameters from the literal representation.
type ParametersLiteral struct {
	Name string `yaml:"name"`
	K    int    `yaml:"k"`
	Eta1 int    `yaml:"eta1"`
	Eta2 int    `yaml:"eta2"`
	Du   int    `yaml:"du"`
	Dv   int    `yaml:"dv"`
}

var (
	// Kyber512 is the parameter set of the round-3 Kyber512 submission.
	Kyber512 = ParametersLiteral{Name: "Kyber512", K: 2, Eta1: 3, Eta2: 2, Du: 10, Dv: 4}

	// Kyber768 is the parameter set of the round-3 Kyber768 submission.
	Kyber768 = ParametersLiteral{Name: "Kyber768", K: 3, Eta1: 2, Eta2: 2, Du: 10, Dv: 4}
)

// Parameters represents a parameter set for the Kyber KEM. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	name string
	k    int
	eta1 int
	eta2 int
	du   int
	dv   int
}

// NewParametersFromLiteral instantiates a set of Kyber parameters from a [ParametersLiteral]
// specification. It returns the empty parameters and a non-nil error if the specified
// parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	switch {
	case pl.K < 1 || pl.K > 4:
		return Parameters{}, fmt.Errorf("kyber.NewParametersFromLiteral: invalid module rank K=%d", pl.K)
	case pl.Eta1 != 2 && pl.Eta1 != 3:
		return Parameters{}, fmt.Errorf("kyber.NewParametersFromLiteral: invalid Eta1=%d", pl.Eta1)
	case pl.Eta2 != 2 && pl.Eta2 != 3:
		return Parameters{}, fmt.Errorf("kyber.NewParametersFromLiteral: invalid Eta2=%d", pl.Eta2)
	case pl.Du < 1 || pl.Du > 11:
		return Parameters{}, fmt.Errorf("kyber.NewParametersFromLiteral: invalid Du=%d", pl.Du)
	case pl.Dv < 1 || pl.Dv > 11:
		return Parameters{}, fmt.Errorf("kyber.NewParametersFromLiteral: invalid Dv=%d", pl.Dv)
	}

	name := pl.Name
	if name == "" {
		name = fmt.Sprintf("Kyber%d", pl.K*ring.N)
	}

	return Parameters{
		name: name,
		k:    pl.K,
		eta1: pl.Eta1,
		eta2: pl.Eta2,
		du:   pl.Du,
		dv:   pl.Dv,
	}, nil
}

// ParametersLiteral returns the [ParametersLiteral] of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Name: p.name,
		K:    p.k,
		Eta1: p.eta1,
		Eta2: p.eta2,
		Du:   p.du,
		Dv:   p.dv,
	}
}

// Name returns the name of the parameter set.
func (p Parameters) Name() string {
	return p.name
}

// K returns the module rank.
func (p Parameters) K() int {
	return p.k
}

// N returns the ring degree.
func (p Parameters) N() int {
	return ring.N
}

// Q returns the coefficient modulus.
func (p Parameters) Q() int {
	return ring.Q
}

// Eta1 returns the centered binomial parameter of the secret and of the encryption randomness.
func (p Parameters) Eta1() int {
	return p.eta1
}

// Eta2 returns the centered binomial parameter of the encryption errors.
func (p Parameters) Eta2() int {
	return p.eta2
}

// Du returns the number of bits per compressed coefficient of u.
func (p Parameters) Du() int {
	return p.du
}

// Dv returns the number of bits per compressed coefficient of v.
func (p Parameters) Dv() int {
	return p.dv
}

// SecretCoefficients returns the number of coefficients of the secret vector, K*N.
func (p Parameters) SecretCoefficients() int {
	return p.k * ring.N
}

// PolyVecSize returns the size in bytes of a 12-bit packed vector of polynomials.
func (p Parameters) PolyVecSize() int {
	return p.k * PolySize
}

// CompressedUSize returns the size in bytes of the compressed vector u.
func (p Parameters) CompressedUSize() int {
	return p.k * ring.EncodedSize(p.du)
}

// CompressedVSize returns the size in bytes of the compressed polynomial v.
func (p Parameters) CompressedVSize() int {
	return ring.EncodedSize(p.dv)
}

// CiphertextSize returns the size in bytes of a ciphertext.
func (p Parameters) CiphertextSize() int {
	return p.CompressedUSize() + p.CompressedVSize()
}

// PublicKeySize returns the size in bytes of a public key: t ‖ rho.
func (p Parameters) PublicKeySize() int {
	return p.PolyVecSize() + SymBytes
}

// PrivateKeySize returns the size in bytes of a private key: s ‖ pk ‖ H(pk) ‖ z.
func (p Parameters) PrivateKeySize() int {
	return p.PolyVecSize() + p.PublicKeySize() + 2*SymBytes
}

// Equal returns true if the two parameter sets are equal.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// String returns the name of the parameter set.
func (p Parameters) String() string {
	return p.name
}
