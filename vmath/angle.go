// Package vmath holds the fixed-size vector and matrix types shared by the
// physics, aerodynamics and scenegraph code.
package vmath

import "math"

// Deg is one degree in radians.
const Deg = math.Pi / 180

// WrapAngle brings theta back into [-pi, pi] with a single 2*pi correction.
// It assumes theta left the interval by less than one full turn.
func WrapAngle(theta float64) float64 {
	if theta > math.Pi {
		theta -= 2 * math.Pi
	} else if theta < -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return isFinite(f)
}
