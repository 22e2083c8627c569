package ring

// Vector is a vector of polynomials, i.e. an element of the module R_q^k.
type Vector []Poly

// NewVector allocates a zero vector of the given rank.
func NewVector(rank int) Vector {
	return make(Vector, rank)
}

// Zero sets all polynomials of v to zero.
func (v Vector) Zero() {
	for i := range v {
		v[i].Zero()
	}
}

// CopyNew creates a deep copy of v.
func (v Vector) CopyNew() Vector {
	out := NewVector(len(v))
	copy(out, v)
	return out
}

// Equal returns true if v and other have the same rank and coefficients.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if !v[i].Equal(&other[i]) {
			return false
		}
	}
	return true
}

// NTT applies the forward transform on each polynomial of v.
func (v Vector) NTT() {
	for i := range v {
		v[i].NTT()
	}
}

// INTT applies the inverse transform on each polynomial of v.
func (v Vector) INTT() {
	for i := range v {
		v[i].INTT()
	}
}

// Add sets v to v + b.
func (v Vector) Add(b Vector) {
	for i := range v {
		v[i].Add(&b[i])
	}
}

// Compress compresses all coefficients of v to d bits.
func (v Vector) Compress(d int) {
	for i := range v {
		v[i].Compress(d)
	}
}

// Decompress decompresses all d-bit coefficients of v.
func (v Vector) Decompress(d int) {
	for i := range v {
		v[i].Decompress(d)
	}
}

// Encode packs v on out and returns the remainder of out.
func (v Vector) Encode(out []byte, bits int) []byte {
	for i := range v {
		out = v[i].Encode(out, bits)
	}
	return out
}

// Decode unpacks v from in and returns the remainder of in.
func (v Vector) Decode(in []byte, bits int) (rem []byte, err error) {
	rem = in
	for i := range v {
		if rem, err = v[i].Decode(rem, bits); err != nil {
			return nil, err
		}
	}
	return rem, nil
}

// InnerProduct sets pol to the inner product of a and b, both in the NTT domain.
func (pol *Poly) InnerProduct(a, b Vector) {
	pol.Zero()
	for i := range a {
		pol.MulCoeffsNTTThenAdd(&a[i], &b[i])
	}
}

// Matrix is a square matrix of polynomials.
type Matrix []Vector

// NewMatrix allocates a zero rank x rank matrix.
func NewMatrix(rank int) Matrix {
	m := make(Matrix, rank)
	for i := range m {
		m[i] = NewVector(rank)
	}
	return m
}

// MulVector sets out to m * v, all in the NTT domain.
func (m Matrix) MulVector(v, out Vector) {
	for i := range m {
		out[i].InnerProduct(m[i], v)
	}
}

// MulVectorTranspose sets out to m^T * v, all in the NTT domain.
func (m Matrix) MulVectorTranspose(v, out Vector) {
	out.Zero()
	for i := range m {
		for j := range m {
			out[i].MulCoeffsNTTThenAdd(&m[j][i], &v[j])
		}
	}
}
