package util

import (
	"golang.org/x/exp/constraints"
)

// NextPowerOfTwo returns i if it is a power of 2, otherwise the next power of two greater than i.
// Zero maps to zero.
func NextPowerOfTwo(i uint64) uint64 {
	i--
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	i++
	return i
}

// CeilDiv returns a/b rounded up, for positive b.
func CeilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// Max returns the maximum of the two values.
// This is a convenience function for the constraints.Ordered interface.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Diff returns the absolute difference of a and b without underflowing unsigned types.
func Diff[T constraints.Integer](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}
