// Package kyber implements the Kyber key encapsulation mechanism with the byte
// layout of the round-3 reference implementation: private keys are s ‖ pk ‖ H(pk) ‖ z
// with s packed on 12 bits in the NTT domain, and ciphertexts are Compress(u, du) ‖
// Compress(v, dv).
//
// Besides the usual key generation, encapsulation and decapsulation it exposes the
// pieces a chosen-ciphertext timing experiment needs: ciphertext compression of
// arbitrary (u, v), the IND-CPA decryption, a decapsulation whose message expansion
// can be switched to a data-dependent branch, and the ground-truth secret coefficients.
package kyber
