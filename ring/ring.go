// Package ring implements arithmetic in the polynomial ring Z_q[X]/(X^N+1) used by
// Kyber, with q = 3329 and N = 256: polynomials and vectors of polynomials, the
// incomplete number theoretic transform, lossy compression, bit packing and the
// uniform and centered binomial samplers.
package ring

const (
	// N is the degree of the cyclotomic polynomial X^N+1.
	N = 256

	// Q is the coefficient modulus.
	Q = 3329

	// LogQ is the bit-size of Q, i.e. the number of bits needed to encode a reduced coefficient.
	LogQ = 12

	// HalfQ is floor(Q/2).
	HalfQ = (Q - 1) / 2
)

// Position returns the coefficient of a ring element that, multiplied with
// coefficient p of another element, lands on the constant coefficient of their
// product: 0 maps to itself and p > 0 maps to N-p.
// The contribution is negated for p > 0 since X^N = -1.
func Position(p int) int {
	if p == 0 {
		return 0
	}
	return N - p
}
