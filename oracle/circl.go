package oracle

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem/kyber/kyber512"

	"github.com/antoonpurnal/clangover/kyber"
)

// CIRCL decapsulates with the Kyber512 implementation of cloudflare/circl, whose
// message expansion is constant time. It is the control of an experiment: the
// attack is expected to end with unknown or wrong guesses.
type CIRCL struct {
	params kyber.Parameters
	sk     *kyber512.PrivateKey
	pk     *kyber512.PublicKey
	ss     []byte
}

// NewCIRCL generates a fresh CIRCL Kyber512 key pair from prng.
func NewCIRCL(prng io.Reader) (*CIRCL, error) {

	params, err := kyber.NewParametersFromLiteral(kyber.Kyber512)
	if err != nil {
		return nil, fmt.Errorf("cannot NewCIRCL: %w", err)
	}

	pk, sk, err := kyber512.GenerateKeyPair(prng)
	if err != nil {
		return nil, fmt.Errorf("cannot NewCIRCL: %w", err)
	}

	return &CIRCL{
		params: params,
		sk:     sk,
		pk:     pk,
		ss:     make([]byte, kyber512.SharedKeySize),
	}, nil
}

// Name implements attack.Victim.
func (c *CIRCL) Name() string {
	return "circl/kyber512"
}

// Parameters implements attack.Victim.
func (c *CIRCL) Parameters() kyber.Parameters {
	return c.params
}

// Decapsulate implements attack.Victim.
func (c *CIRCL) Decapsulate(ct []byte) error {
	// circl panics on malformed input
	if len(ct) != kyber512.CiphertextSize {
		return fmt.Errorf("cannot Decapsulate: ciphertext has %d bytes but %s expects %d", len(ct), c.Name(), kyber512.CiphertextSize)
	}
	c.sk.DecapsulateTo(c.ss, ct)
	return nil
}

// SecretCoefficients implements GroundTruth by decoding the packed private key.
func (c *CIRCL) SecretCoefficients() ([]int16, error) {
	buf := make([]byte, kyber512.PrivateKeySize)
	c.sk.Pack(buf)
	coeffs, err := kyber.SecretCoefficientsFromBytes(c.params, buf)
	if err != nil {
		return nil, fmt.Errorf("cannot SecretCoefficients: %w", err)
	}
	return coeffs, nil
}

// Fingerprint returns the fingerprint of the public key, equal to the one of the
// same key in package kyber.
func (c *CIRCL) Fingerprint() string {
	buf := make([]byte, kyber512.PublicKeySize)
	c.pk.Pack(buf)
	pk, err := kyber.UnmarshalPublicKey(c.params, buf)
	if err != nil {
		// the sizes match by construction
		panic(err)
	}
	return pk.Fingerprint()
}
