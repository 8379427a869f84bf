package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Lerp weights a by t and b by 1 - t, so t = 1 returns a.
func Lerp[T constraints.Float](a, b, t T) T {
	return a*t + b*(1-t)
}

// AlmostEqual reports whether a and b differ by at most tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return m.Abs(a-b) <= tolerance
}
