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

// WrapDegrees wraps an angle into [0, 360).
func WrapDegrees(degrees float32) float32 {
	w := float32(m.Mod(float64(degrees), 360))
	if w < 0 {
		w += 360
	}
	// -tiny + 360 rounds up to 360 in float32
	if w >= 360 {
		w = 0
	}
	return w
}
