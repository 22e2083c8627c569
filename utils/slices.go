package utils

import (
	"golang.org/x/exp/constraints"
)

// ToFloat64 converts a slice of integers into a newly allocated slice of float64.
func ToFloat64[T constraints.Integer](s []T) (f []float64) {
	f = make([]float64, len(s))
	for i := range s {
		f[i] = float64(s[i])
	}
	return
}
