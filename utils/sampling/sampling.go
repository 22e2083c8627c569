// Package sampling implements sampling of bytes and integers from a PRNG.
package sampling

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// RandUint64 returns a random value between 0 and 0xFFFFFFFFFFFFFFFF read from prng.
func RandUint64(prng io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(prng, b[:]); err != nil {
		return 0, fmt.Errorf("cannot RandUint64: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// RandIntN returns a uniformly distributed integer in [0, n).
// It uses rejection sampling on single bytes, so n must be in [1, 256].
// The number of bytes consumed depends only on the PRNG output.
func RandIntN(prng io.Reader, n int) (int, error) {

	if n < 1 || n > 256 {
		return 0, fmt.Errorf("cannot RandIntN: n=%d must be in [1, 256]", n)
	}

	// largest multiple of n that fits in a byte
	limit := 256 - 256%n

	var b [1]byte
	for {
		if _, err := io.ReadFull(prng, b[:]); err != nil {
			return 0, fmt.Errorf("cannot RandIntN: %w", err)
		}
		if int(b[0]) < limit {
			return int(b[0]) % n, nil
		}
	}
}

// RandFloat64 returns a random float in [min, max).
func RandFloat64(prng io.Reader, min, max float64) (float64, error) {
	x, err := RandUint64(prng)
	if err != nil {
		return 0, err
	}
	f := float64(x>>11) / (1 << 53)
	return min + f*(max-min), nil
}

// NormFloat64 returns a normally distributed float with mean 0 and standard
// deviation 1, using the Box-Muller transform.
func NormFloat64(prng io.Reader) (float64, error) {

	u1, err := RandFloat64(prng, 0, 1)
	if err != nil {
		return 0, err
	}

	u2, err := RandFloat64(prng, 0, 1)
	if err != nil {
		return 0, err
	}

	// u1 in (0, 1] to keep the logarithm finite
	u1 = 1 - u1

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2), nil
}
