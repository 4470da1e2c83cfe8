package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// Horizontal returns v with its vertical component removed.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// HorizontalLength returns the length of v projected onto the XZ plane.
func HorizontalLength(v mgl64.Vec3) float64 {
	return gomath.Hypot(v[0], v[2])
}

// HorizontalDir returns the normalized XZ projection of v, or the zero vector
// when the projection is degenerate.
func HorizontalDir(v mgl64.Vec3) mgl64.Vec3 {
	l := HorizontalLength(v)
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0] / l, 0, v[2] / l}
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v mgl64.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// Forward returns the horizontal forward vector for a compass heading.
// Heading 0 faces -Z; positive headings turn towards +X.
func Forward(heading float64) mgl64.Vec3 {
	s, c := gomath.Sincos(heading)
	return mgl64.Vec3{s, 0, -c}
}

// Right returns the horizontal right vector for a compass heading.
func Right(heading float64) mgl64.Vec3 {
	s, c := gomath.Sincos(heading)
	return mgl64.Vec3{c, 0, s}
}
