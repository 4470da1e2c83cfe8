package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuatFromHeading builds the rotation that turns -Z onto Forward(heading).
// A compass heading is a clockwise (seen from above) rotation, so the
// right-handed angle around +Y is its negation.
func QuatFromHeading(heading float64) mgl64.Quat {
	return mgl64.QuatRotate(-heading, Up)
}

// Heading extracts the compass heading of an orientation using the YXZ
// decomposition, so body tilt does not leak into the heading.
func Heading(q mgl64.Quat) float64 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W

	m23 := 2 * (y*z - w*x)
	var yaw float64
	if gomath.Abs(m23) < 0.9999999 {
		m13 := 2 * (x*z + w*y)
		m33 := 1 - 2*(x*x+y*y)
		yaw = gomath.Atan2(m13, m33)
	} else {
		// Looking straight up or down: fall back to the X/Z rows.
		m31 := 2 * (x*z - w*y)
		m11 := 1 - 2*(y*y+z*z)
		yaw = gomath.Atan2(-m31, m11)
	}
	return WrapAngle(-yaw)
}

// TiltTo returns the shortest rotation taking Up onto normal.
func TiltTo(normal mgl64.Vec3) mgl64.Quat {
	n := normal.Normalize()
	d := Up.Dot(n)
	if d > 0.999999 {
		return mgl64.QuatIdent()
	}
	if d < -0.999999 {
		return mgl64.QuatRotate(gomath.Pi, mgl64.Vec3{1, 0, 0})
	}
	axis := Up.Cross(n).Normalize()
	return mgl64.QuatRotate(gomath.Acos(Clamp(d, -1, 1)), axis)
}

// IsFiniteQuat reports whether every component of q is finite.
func IsFiniteQuat(q mgl64.Quat) bool {
	return IsFinite(q.W) && IsFiniteVec3(q.V)
}
