// Package picking provides ray casting and overlap tests for sensors and ground probes.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // Normalized direction
}

// Down returns a ray pointing straight down from origin.
func Down(origin mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: mgl64.Vec3{0, -1, 0}}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float64) (x, z float64, ok bool) {
	if gomath.Abs(r.Direction[1]) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	x = r.Origin[0] + t*r.Direction[0]
	z = r.Origin[2] + t*r.Direction[2]
	return x, z, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tmin := -gomath.MaxFloat64
	tmax := gomath.MaxFloat64

	for axis := range 3 {
		if r.Direction[axis] != 0 {
			t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
			t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = gomath.Max(tmin, t1)
			tmax = gomath.Min(tmax, t2)
		} else if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle tests the ray against triangle (a, b, c) using the
// Möller-Trumbore algorithm. Hits behind the origin are ignored; both faces count.
func (r Ray) IntersectTriangle(a, b, c mgl64.Vec3) (t float64, hit bool) {
	const eps = 1e-12

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if gomath.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// NewAABB creates an AABB from min and max corners, handling swapped values.
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	box := AABB{
		Min: mgl64.Vec3{minX, minY, minZ},
		Max: mgl64.Vec3{maxX, maxY, maxZ},
	}
	for axis := range 3 {
		if box.Min[axis] > box.Max[axis] {
			box.Min[axis], box.Max[axis] = box.Max[axis], box.Min[axis]
		}
	}
	return box
}

// CenteredAABB creates an AABB around center with the given half extents.
func CenteredAABB(center, halfExtents mgl64.Vec3) AABB {
	return NewAABB(
		center[0]-halfExtents[0], center[1]-halfExtents[1], center[2]-halfExtents[2],
		center[0]+halfExtents[0], center[1]+halfExtents[1], center[2]+halfExtents[2],
	)
}

// Expand returns the box grown by margin on every side.
func (b AABB) Expand(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Overlaps reports whether two boxes intersect. Touching faces count as overlap.
func (b AABB) Overlaps(o AABB) bool {
	for axis := range 3 {
		if b.Max[axis] < o.Min[axis] || o.Max[axis] < b.Min[axis] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside the box.
func (b AABB) Contains(p mgl64.Vec3) bool {
	for axis := range 3 {
		if p[axis] < b.Min[axis] || p[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}
