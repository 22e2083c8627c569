package kyber

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/antoonpurnal/clangover/ring"
)

// PublicKey is a Kyber public key. t is kept in the NTT domain and the matrix
// expanded from rho is cached.
type PublicKey struct {
	params Parameters
	t      ring.Vector
	rho    [SymBytes]byte
	hash   [SymBytes]byte
	m      ring.Matrix
}

// PrivateKey is a Kyber private key. s is kept in the NTT domain.
type PrivateKey struct {
	PublicKey
	s ring.Vector
	z [SymBytes]byte
}

// GenerateKeyPair generates a key pair, reading 64 bytes of randomness from prng.
func GenerateKeyPair(params Parameters, prng io.Reader) (*PublicKey, *PrivateKey, error) {

	var seed [2 * SymBytes]byte
	if _, err := io.ReadFull(prng, seed[:]); err != nil {
		return nil, nil, fmt.Errorf("cannot GenerateKeyPair: %w", err)
	}

	hashed := hashG(seed[:SymBytes])
	rho, sigma := hashed[:SymBytes], hashed[SymBytes:]

	sk := newPrivateKey(params)
	copy(sk.rho[:], rho)
	copy(sk.z[:], seed[SymBytes:])
	if err := expandMatrix(sk.m, sk.rho[:]); err != nil {
		return nil, nil, fmt.Errorf("cannot GenerateKeyPair: %w", err)
	}

	var nonce byte
	if err := sampleVector(sk.s, sigma, &nonce, params.eta1); err != nil {
		return nil, nil, fmt.Errorf("cannot GenerateKeyPair: %w", err)
	}
	e := ring.NewVector(params.k)
	if err := sampleVector(e, sigma, &nonce, params.eta1); err != nil {
		return nil, nil, fmt.Errorf("cannot GenerateKeyPair: %w", err)
	}

	sk.s.NTT()
	e.NTT()
	sk.finalize(e)

	return &sk.PublicKey, sk, nil
}

// NewKeyPairFromSecret builds a consistent key pair whose secret vector has the given
// centered coefficients (K*N values in [-Eta1, Eta1], block by block).
// The seed rho, the error vector and z are drawn from prng.
func NewKeyPairFromSecret(params Parameters, secret []int16, prng io.Reader) (*PublicKey, *PrivateKey, error) {

	if len(secret) != params.SecretCoefficients() {
		return nil, nil, fmt.Errorf("cannot NewKeyPairFromSecret: got %d coefficients but %s has %d", len(secret), params.name, params.SecretCoefficients())
	}

	var seed [3 * SymBytes]byte
	if _, err := io.ReadFull(prng, seed[:]); err != nil {
		return nil, nil, fmt.Errorf("cannot NewKeyPairFromSecret: %w", err)
	}

	sk := newPrivateKey(params)
	copy(sk.rho[:], seed[:SymBytes])
	copy(sk.z[:], seed[2*SymBytes:])
	if err := expandMatrix(sk.m, sk.rho[:]); err != nil {
		return nil, nil, fmt.Errorf("cannot NewKeyPairFromSecret: %w", err)
	}

	for i := range sk.s {
		if err := sk.s[i].SetCentered(secret[i*ring.N : (i+1)*ring.N]); err != nil {
			return nil, nil, fmt.Errorf("cannot NewKeyPairFromSecret: %w", err)
		}
	}

	nonce := byte(params.k)
	e := ring.NewVector(params.k)
	if err := sampleVector(e, seed[SymBytes:2*SymBytes], &nonce, params.eta1); err != nil {
		return nil, nil, fmt.Errorf("cannot NewKeyPairFromSecret: %w", err)
	}

	sk.s.NTT()
	e.NTT()
	sk.finalize(e)

	return &sk.PublicKey, sk, nil
}

func newPrivateKey(params Parameters) *PrivateKey {
	return &PrivateKey{
		PublicKey: PublicKey{
			params: params,
			t:      ring.NewVector(params.k),
			m:      ring.NewMatrix(params.k),
		},
		s: ring.NewVector(params.k),
	}
}

// finalize sets t = m^T s + e and the public key hash.
func (sk *PrivateKey) finalize(e ring.Vector) {
	sk.m.MulVectorTranspose(sk.s, sk.t)
	sk.t.Add(e)
	sk.hash = hashH(sk.PublicKey.marshal())
}

// sampleVector fills v with centered binomial polynomials of parameter eta, one
// PRF nonce per polynomial starting at *nonce.
func sampleVector(v ring.Vector, seed []byte, nonce *byte, eta int) error {
	for i := range v {
		cbs, err := ring.NewCenteredBinomialSampler(prf(seed, *nonce), eta)
		if err != nil {
			return err
		}
		*nonce++
		if err = cbs.Read(&v[i]); err != nil {
			return err
		}
	}
	return nil
}

// expandMatrix sets m[i][j] to the uniform polynomial read from XOF(rho ‖ i ‖ j).
func expandMatrix(m ring.Matrix, rho []byte) error {
	for i := range m {
		for j := range m[i] {
			if err := ring.NewUniformSampler(xof(rho, byte(i), byte(j))).Read(&m[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Parameters returns the parameters of the key.
func (pk *PublicKey) Parameters() Parameters {
	return pk.params
}

// marshal returns t ‖ rho.
func (pk *PublicKey) marshal() []byte {
	out := make([]byte, pk.params.PublicKeySize())
	rem := pk.t.Encode(out, ring.LogQ)
	copy(rem, pk.rho[:])
	return out
}

// MarshalBinary encodes the public key as t ‖ rho.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return pk.marshal(), nil
}

// UnmarshalPublicKey decodes a public key and expands its matrix.
func UnmarshalPublicKey(params Parameters, data []byte) (*PublicKey, error) {
	pk := &PublicKey{
		params: params,
		t:      ring.NewVector(params.k),
		m:      ring.NewMatrix(params.k),
	}
	if err := pk.unmarshal(data); err != nil {
		return nil, fmt.Errorf("cannot UnmarshalPublicKey: %w", err)
	}
	return pk, nil
}

func (pk *PublicKey) unmarshal(data []byte) error {
	if len(data) != pk.params.PublicKeySize() {
		return fmt.Errorf("public key has %d bytes but %s expects %d", len(data), pk.params.name, pk.params.PublicKeySize())
	}
	rem, err := pk.t.Decode(data, ring.LogQ)
	if err != nil {
		return err
	}
	copy(pk.rho[:], rem)
	pk.hash = hashH(data)
	return expandMatrix(pk.m, pk.rho[:])
}

// Equal returns true if both public keys have the same parameters and encoding.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.params.Equal(&other.params) && pk.t.Equal(other.t) && pk.rho == other.rho
}

// Fingerprint returns a short BLAKE3 identifier of the encoded public key.
func (pk *PublicKey) Fingerprint() string {
	sum := blake3.Sum256(pk.marshal())
	return hex.EncodeToString(sum[:8])
}

// MarshalBinary encodes the private key as s ‖ pk ‖ H(pk) ‖ z.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, sk.params.PrivateKeySize())
	rem := sk.s.Encode(out, ring.LogQ)
	rem = rem[copy(rem, sk.PublicKey.marshal()):]
	rem = rem[copy(rem, sk.hash[:]):]
	copy(rem, sk.z[:])
	return out, nil
}

// UnmarshalPrivateKey decodes a private key. It returns an error if the data has
// the wrong size, if a coefficient is not reduced or if the embedded public key
// hash does not match the embedded public key.
func UnmarshalPrivateKey(params Parameters, data []byte) (*PrivateKey, error) {

	if len(data) != params.PrivateKeySize() {
		return nil, fmt.Errorf("cannot UnmarshalPrivateKey: private key has %d bytes but %s expects %d", len(data), params.name, params.PrivateKeySize())
	}

	sk := newPrivateKey(params)

	rem, err := sk.s.Decode(data, ring.LogQ)
	if err != nil {
		return nil, fmt.Errorf("cannot UnmarshalPrivateKey: %w", err)
	}

	if err = sk.PublicKey.unmarshal(rem[:params.PublicKeySize()]); err != nil {
		return nil, fmt.Errorf("cannot UnmarshalPrivateKey: %w", err)
	}
	rem = rem[params.PublicKeySize():]

	if subtle.ConstantTimeCompare(sk.hash[:], rem[:SymBytes]) != 1 {
		return nil, fmt.Errorf("cannot UnmarshalPrivateKey: embedded public key hash mismatch")
	}
	copy(sk.z[:], rem[SymBytes:])

	return sk, nil
}

// Public returns the public part of the key.
func (sk *PrivateKey) Public() *PublicKey {
	return &sk.PublicKey
}

// SecretCoefficients returns the K*N coefficients of the secret vector in the
// coefficient domain, centered in [-(Q-1)/2, (Q-1)/2], block by block.
func (sk *PrivateKey) SecretCoefficients() []int16 {
	s := sk.s.CopyNew()
	s.INTT()
	out := make([]int16, sk.params.SecretCoefficients())
	for i := range s {
		// cannot fail, the slice has length N
		_ = s[i].Centered(out[i*ring.N : (i+1)*ring.N])
	}
	return out
}

// SecretCoefficientsFromBytes decodes the secret vector of an encoded private key
// and returns its centered coefficients. Only the leading PolyVecSize bytes are read.
func SecretCoefficientsFromBytes(params Parameters, data []byte) ([]int16, error) {
	if len(data) < params.PolyVecSize() {
		return nil, fmt.Errorf("cannot SecretCoefficientsFromBytes: need %d bytes but have %d", params.PolyVecSize(), len(data))
	}
	sk := &PrivateKey{PublicKey: PublicKey{params: params}, s: ring.NewVector(params.k)}
	if _, err := sk.s.Decode(data, ring.LogQ); err != nil {
		return nil, fmt.Errorf("cannot SecretCoefficientsFromBytes: %w", err)
	}
	return sk.SecretCoefficients(), nil
}
