package oracle

import (
	"fmt"
	"io"

	"github.com/antoonpurnal/clangover/kyber"
)

// Reference decapsulates with the in-module Kyber implementation. With
// [kyber.Branching] its re-encryption expands the message with a secret-dependent
// branch and leaks the decrypted message bits through its duration.
type Reference struct {
	sk  *kyber.PrivateKey
	dec *kyber.Decapsulator
	ss  []byte
}

// NewReference generates a fresh key pair from prng and returns its oracle.
func NewReference(params kyber.Parameters, encoding kyber.MessageEncoding, prng io.Reader) (*Reference, error) {
	_, sk, err := kyber.GenerateKeyPair(params, prng)
	if err != nil {
		return nil, fmt.Errorf("cannot NewReference: %w", err)
	}
	return NewReferenceFromKey(sk, encoding), nil
}

// NewReferenceFromKey returns the oracle of an existing private key.
func NewReferenceFromKey(sk *kyber.PrivateKey, encoding kyber.MessageEncoding) *Reference {
	return &Reference{
		sk:  sk,
		dec: kyber.NewDecapsulator(sk, encoding),
		ss:  make([]byte, kyber.SharedSecretSize),
	}
}

// Name implements attack.Victim.
func (r *Reference) Name() string {
	return "reference/" + r.dec.Encoding().String()
}

// Parameters implements attack.Victim.
func (r *Reference) Parameters() kyber.Parameters {
	return r.sk.Parameters()
}

// Decapsulate implements attack.Victim.
func (r *Reference) Decapsulate(ct []byte) error {
	return r.dec.DecapsulateTo(r.ss, ct)
}

// SecretCoefficients implements GroundTruth.
func (r *Reference) SecretCoefficients() ([]int16, error) {
	return r.sk.SecretCoefficients(), nil
}

// Fingerprint returns the fingerprint of the public key.
func (r *Reference) Fingerprint() string {
	return r.sk.Public().Fingerprint()
}

// PrivateKey returns the key of the oracle.
func (r *Reference) PrivateKey() *kyber.PrivateKey {
	return r.sk
}
