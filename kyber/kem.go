package kyber

import (
	"crypto/subtle"
	"fmt"
	"io"
)

// Encapsulate draws 32 bytes from prng and returns a ciphertext and the shared
// secret it encapsulates.
func (pk *PublicKey) Encapsulate(prng io.Reader) (ct, ss []byte, err error) {

	var seed [SymBytes]byte
	if _, err = io.ReadFull(prng, seed[:]); err != nil {
		return nil, nil, fmt.Errorf("cannot Encapsulate: %w", err)
	}

	m := hashH(seed[:])
	kr := hashG(m[:], pk.hash[:])

	ct = make([]byte, pk.params.CiphertextSize())
	if err = newEncryptor(pk, ConstantTime).encrypt(ct, m[:], kr[SymBytes:]); err != nil {
		return nil, nil, fmt.Errorf("cannot Encapsulate: %w", err)
	}

	hc := hashH(ct)
	ss = make([]byte, SharedSecretSize)
	kdf(ss, kr[:SymBytes], hc[:])

	return ct, ss, nil
}

// Decapsulator runs the Fujisaki-Okamoto decapsulation with implicit rejection
// under a fixed private key. It reuses its buffers across calls and is not safe
// for concurrent use.
type Decapsulator struct {
	sk  *PrivateKey
	dec *decryptor
	enc *encryptor
	msg [MessageSize]byte
	cmp []byte
}

// NewDecapsulator returns a Decapsulator whose re-encryption expands the
// decrypted message with the given encoding.
func NewDecapsulator(sk *PrivateKey, encoding MessageEncoding) *Decapsulator {
	return &Decapsulator{
		sk:  sk,
		dec: newDecryptor(sk),
		enc: newEncryptor(&sk.PublicKey, encoding),
		cmp: make([]byte, sk.params.CiphertextSize()),
	}
}

// Encoding returns the message encoding used by the re-encryption.
func (d *Decapsulator) Encoding() MessageEncoding {
	return d.enc.encoding
}

// DecapsulateTo writes on ss the shared secret encapsulated by ct. An invalid
// ciphertext of the right size yields a pseudorandom secret derived from z.
// It returns an error if ct or ss have the wrong size.
func (d *Decapsulator) DecapsulateTo(ss, ct []byte) (err error) {

	if len(ss) != SharedSecretSize {
		return fmt.Errorf("cannot DecapsulateTo: shared secret buffer has %d bytes but must be %d", len(ss), SharedSecretSize)
	}

	if err = d.dec.decrypt(ct, d.msg[:]); err != nil {
		return fmt.Errorf("cannot DecapsulateTo: %w", err)
	}

	kr := hashG(d.msg[:], d.sk.hash[:])

	if err = d.enc.encrypt(d.cmp, d.msg[:], kr[SymBytes:]); err != nil {
		return fmt.Errorf("cannot DecapsulateTo: %w", err)
	}

	fail := 1 - subtle.ConstantTimeCompare(ct, d.cmp)
	hc := hashH(ct)
	subtle.ConstantTimeCopy(fail, kr[:SymBytes], d.sk.z[:])
	kdf(ss, kr[:SymBytes], hc[:])

	return nil
}

// Decapsulate returns the shared secret encapsulated by ct using the constant-time
// message encoding.
func (sk *PrivateKey) Decapsulate(ct []byte) ([]byte, error) {
	ss := make([]byte, SharedSecretSize)
	if err := NewDecapsulator(sk, ConstantTime).DecapsulateTo(ss, ct); err != nil {
		return nil, err
	}
	return ss, nil
}
