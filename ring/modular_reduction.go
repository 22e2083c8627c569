package ring

//==========================
//=== BARRETT REDUCTION ===
//==========================

const (
	barrettMultiplier = 5039 // floor(2^24/Q)
	barrettShift      = 24
)

// CRed returns x mod Q for x in [0, 2Q).
// It runs in constant time.
func CRed(x uint16) uint16 {
	if x >= 2*Q {
		panic("cannot CRed: value out of range")
	}
	subtracted := x - Q
	mask := 0 - (subtracted >> 15)
	return (mask & x) | (^mask & subtracted)
}

// BRed returns x mod Q for x in [0, Q + 2Q^2).
// It runs in constant time.
func BRed(x uint32) uint16 {
	if x >= Q+2*Q*Q {
		panic("cannot BRed: value out of range")
	}
	product := uint64(x) * barrettMultiplier
	quotient := uint32(product >> barrettShift)
	remainder := x - quotient*Q
	return CRed(uint16(remainder))
}

// lt returns 0xffffffff if a < b and 0 otherwise.
func lt(a, b uint32) uint32 {
	return uint32(0-int32(a^((a^b)|((a-b)^a)))>>31)
}

// Center maps x in [0, Q) to its representative in (-Q/2, Q/2].
func Center(x uint16) int16 {
	if x > HalfQ {
		return int16(x) - Q
	}
	return int16(x)
}

// Uncenter maps a signed integer to its residue in [0, Q).
func Uncenter(x int16) uint16 {
	r := int32(x) % Q
	if r < 0 {
		r += Q
	}
	return uint16(r)
}
