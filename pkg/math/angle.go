// Package math provides angle, vector and orientation helpers for the sled simulation.
// Vectors and quaternions are mgl64 values; this package only adds the conventions
// the game relies on (Y-up, compass heading, wrapped angles).
package math

import gomath "math"

// WrapAngle wraps an angle in radians into (-π, π].
func WrapAngle(a float64) float64 {
	if gomath.IsNaN(a) || gomath.IsInf(a, 0) {
		return a
	}
	a = gomath.Mod(a+gomath.Pi, 2*gomath.Pi)
	if a <= 0 {
		a += 2 * gomath.Pi
	}
	return a - gomath.Pi
}

// ShortestAngleDelta returns the signed smallest rotation that takes current to target.
func ShortestAngleDelta(target, current float64) float64 {
	return WrapAngle(target - current)
}

// DampFactor returns the exponential smoothing weight 1 - base^(rate*dt).
// A base of 0.02 with rate 1 closes 98% of the gap per second.
func DampFactor(base, rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 {
		return 0
	}
	return 1 - gomath.Pow(base, rate*dt)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * gomath.Pi / 180
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}
