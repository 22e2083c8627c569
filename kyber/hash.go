package kyber

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// hashH is SHA3-256 over the concatenation of in.
func hashH(in ...[]byte) (out [32]byte) {
	h := sha3.New256()
	for _, b := range in {
		h.Write(b)
	}
	h.Sum(out[:0])
	return
}

// hashG is SHA3-512 over the concatenation of in.
func hashG(in ...[]byte) (out [64]byte) {
	h := sha3.New512()
	for _, b := range in {
		h.Write(b)
	}
	h.Sum(out[:0])
	return
}

// prf returns the SHAKE256 stream of seed ‖ nonce.
func prf(seed []byte, nonce byte) io.Reader {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{nonce})
	return h
}

// xof returns the SHAKE128 stream of rho ‖ i ‖ j.
func xof(rho []byte, i, j byte) io.Reader {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{i, j})
	return h
}

// kdf fills out with the SHAKE256 stream of in.
func kdf(out []byte, in ...[]byte) {
	h := sha3.NewShake256()
	for _, b := range in {
		h.Write(b)
	}
	h.Read(out)
}
