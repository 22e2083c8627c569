// Package utils implements small generic helpers shared by the other packages.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum value of the two inputs.
func Min[V constraints.Ordered](a, b V) (r V) {
	if a > b {
		return b
	}
	return a
}

// Max returns the maximum value of the two inputs.
func Max[V constraints.Ordered](a, b V) (r V) {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of x.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// IsMask returns true if x is of the form 2^k - 1, i.e. if x can be used as a
// bit-mask to test whether a counter is a multiple of 2^k.
func IsMask[T constraints.Unsigned](x T) bool {
	return x&(x+1) == 0
}

// AllDistinct returns true if all elements in s are distinct, and false otherwise.
func AllDistinct[V comparable](s []V) bool {
	m := make(map[V]struct{}, len(s))
	for _, si := range s {
		if _, exists := m[si]; exists {
			return false
		}
		m[si] = struct{}{}
	}
	return true
}

// CountIf returns the number of elements of s for which f returns true.
func CountIf[V any](s []V, f func(V) bool) (n int) {
	for i := range s {
		if f(s[i]) {
			n++
		}
	}
	return
}
