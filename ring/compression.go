package ring

// Compress maps x in [0, Q) to round(2^d/Q * x) mod 2^d, grouping numbers
// close to each other together.
// Since both the quotient and the remainder are needed, the Barrett reduction
// is done inline. It runs in constant time.
func Compress(x uint16, d int) uint16 {
	product := uint32(x) << d
	quotient := uint32((uint64(product) * barrettMultiplier) >> barrettShift)
	remainder := product - quotient*Q

	// rounds the quotient:
	//   0 <= remainder <= HalfQ rounds to 0
	//   HalfQ < remainder <= Q + HalfQ rounds to 1
	//   Q + HalfQ < remainder < 2Q rounds to 2
	quotient += 1 & lt(HalfQ, remainder)
	quotient += 1 & lt(Q+HalfQ, remainder)
	return uint16(quotient) & ((1 << d) - 1)
}

// Decompress maps x in [0, 2^d) to round(Q/2^d * x).
func Decompress(x uint16, d int) uint16 {
	product := uint32(x) * Q
	power := uint32(1) << d
	remainder := product & (power - 1)
	lower := product >> d
	// the first half of the residues mod 2^d have a 0 as top bit, the second half a 1
	return uint16(lower + (remainder >> (d - 1)))
}

// Compress compresses all coefficients of pol to d bits in place.
func (pol *Poly) Compress(d int) {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = Compress(pol.Coeffs[i], d)
	}
}

// Decompress decompresses all d-bit coefficients of pol in place.
func (pol *Poly) Decompress(d int) {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = Decompress(pol.Coeffs[i], d)
	}
}
