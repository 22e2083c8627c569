package kyber

import (
	"fmt"

	"github.com/antoonpurnal/clangover/ring"
)

// encryptor holds the buffers of the IND-CPA encryption under a fixed public key.
type encryptor struct {
	pk       *PublicKey
	encoding MessageEncoding
	r        ring.Vector
	e1       ring.Vector
	u        ring.Vector
	e2       ring.Poly
	v        ring.Poly
	msg      ring.Poly
}

func newEncryptor(pk *PublicKey, encoding MessageEncoding) *encryptor {
	return &encryptor{
		pk:       pk,
		encoding: encoding,
		r:        ring.NewVector(pk.params.k),
		e1:       ring.NewVector(pk.params.k),
		u:        ring.NewVector(pk.params.k),
	}
}

// encrypt writes on out the encryption of msg under the randomness coins:
// u = m r + e1, v = <t, r> + e2 + expand(msg).
func (enc *encryptor) encrypt(out, msg, coins []byte) (err error) {

	params := enc.pk.params

	var nonce byte
	if err = sampleVector(enc.r, coins, &nonce, params.eta1); err != nil {
		return
	}
	if err = sampleVector(enc.e1, coins, &nonce, params.eta2); err != nil {
		return
	}
	cbs, err := ring.NewCenteredBinomialSampler(prf(coins, nonce), params.eta2)
	if err != nil {
		return
	}
	if err = cbs.Read(&enc.e2); err != nil {
		return
	}

	enc.r.NTT()

	enc.pk.m.MulVector(enc.r, enc.u)
	enc.u.INTT()
	enc.u.Add(enc.e1)

	enc.v.InnerProduct(enc.pk.t, enc.r)
	enc.v.INTT()
	enc.v.Add(&enc.e2)

	enc.encoding.expand(msg, &enc.msg)
	enc.v.Add(&enc.msg)

	enc.u.Compress(params.du)
	rem := enc.u.Encode(out, params.du)
	enc.v.Compress(params.dv)
	enc.v.Encode(rem, params.dv)

	return nil
}

// decryptor holds the buffers of the IND-CPA decryption under a fixed private key.
type decryptor struct {
	sk   *PrivateKey
	u    ring.Vector
	v    ring.Poly
	mask ring.Poly
}

func newDecryptor(sk *PrivateKey) *decryptor {
	return &decryptor{
		sk: sk,
		u:  ring.NewVector(sk.params.k),
	}
}

// decrypt writes on msg the 1-bit compression of v - <s, u>.
func (dec *decryptor) decrypt(ct, msg []byte) (err error) {

	if err = dec.sk.params.DecodeCiphertext(ct, dec.u, &dec.v); err != nil {
		return
	}

	dec.u.NTT()
	dec.mask.InnerProduct(dec.sk.s, dec.u)
	dec.mask.INTT()
	dec.v.Sub(&dec.mask)

	extract(&dec.v, msg)

	return nil
}

// EncryptCPA returns the IND-CPA encryption of the 32-byte message msg with the
// 32-byte randomness coins.
func (pk *PublicKey) EncryptCPA(msg, coins []byte, encoding MessageEncoding) ([]byte, error) {
	if len(msg) != MessageSize || len(coins) != SymBytes {
		return nil, fmt.Errorf("cannot EncryptCPA: message and coins must be %d bytes", SymBytes)
	}
	out := make([]byte, pk.params.CiphertextSize())
	if err := newEncryptor(pk, encoding).encrypt(out, msg, coins); err != nil {
		return nil, fmt.Errorf("cannot EncryptCPA: %w", err)
	}
	return out, nil
}

// DecryptCPA returns the IND-CPA decryption of ct.
func (sk *PrivateKey) DecryptCPA(ct []byte) ([]byte, error) {
	msg := make([]byte, MessageSize)
	if err := newDecryptor(sk).decrypt(ct, msg); err != nil {
		return nil, fmt.Errorf("cannot DecryptCPA: %w", err)
	}
	return msg, nil
}
