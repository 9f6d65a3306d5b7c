// Package easing holds the cubic blend curve and the small bits of angle and
// clamp arithmetic shared by the integrator, navigation and camera.
package easing

import (
	"math"

	"golang.org/x/exp/constraints"
)

// EaseInOutCubic maps t in [0,1] onto a cubic ease-in-out curve. Inputs
// outside [0,1] are clamped first.
func EaseInOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// WrapDegrees reduces d into (-180, 180].
func WrapDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// WrapRadians reduces r into [0, 2pi).
func WrapRadians(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

func Degrees(r float64) float64 {
	return r * 180 / math.Pi
}

func Radians(d float64) float64 {
	return d / 180 * math.Pi
}

// SanitizeDelta turns a raw frame delta into a usable one: NaN and negative
// values become 0 and anything above maxDelta is cut to maxDelta.
func SanitizeDelta(dt, maxDelta float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > maxDelta {
		return maxDelta
	}
	return dt
}
