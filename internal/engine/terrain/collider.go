package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/winter-sled/internal/engine/picking"
)

// Surface response of the snow trimesh.
const (
	DefaultFriction    = 1.2
	DefaultRestitution = 0.05
)

// Collider is the static triangle surface the physics world collides against.
// It shares the triangulation of Mesh but owns its own buffers.
type Collider struct {
	Positions   []mgl64.Vec3
	Indices     []uint32
	Friction    float64
	Restitution float64

	segments int
	size     float64
	cell     float64
}

// Hit describes a ray or point query against the collider.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// BuildCollider creates the collision surface for a heightfield.
func BuildCollider(hf *HeightField) *Collider {
	s := hf.segments
	stride := s + 1
	positions := make([]mgl64.Vec3, stride*stride)
	for j := 0; j <= s; j++ {
		for i := 0; i <= s; i++ {
			x, z := hf.GridPosition(i, j)
			positions[j*stride+i] = mgl64.Vec3{x, hf.heights[j*stride+i], z}
		}
	}

	return &Collider{
		Positions:   positions,
		Indices:     gridIndices(s),
		Friction:    DefaultFriction,
		Restitution: DefaultRestitution,
		segments:    s,
		size:        hf.size,
		cell:        hf.cell,
	}
}

// cellTriangles returns the two triangles of grid cell (i, j).
func (c *Collider) cellTriangles(i, j int) [2][3]mgl64.Vec3 {
	stride := c.segments + 1
	a := c.Positions[j*stride+i]
	b := c.Positions[(j+1)*stride+i]
	cc := c.Positions[(j+1)*stride+i+1]
	d := c.Positions[j*stride+i+1]
	return [2][3]mgl64.Vec3{{a, b, d}, {b, cc, d}}
}

// cellAt returns the grid cell containing world (x, z) and the local offsets within it.
func (c *Collider) cellAt(x, z float64) (i, j int, fx, fz float64, ok bool) {
	half := c.size / 2
	if !(x >= -half && x <= half && z >= -half && z <= half) {
		return 0, 0, 0, 0, false
	}
	gx := (x + half) / c.cell
	gz := (z + half) / c.cell
	i = clampIndex(int(math.Floor(gx)), c.segments-1)
	j = clampIndex(int(math.Floor(gz)), c.segments-1)
	return i, j, clampUnit(gx - float64(i)), clampUnit(gz - float64(j)), true
}

// HeightAt returns the height of the triangle under (x, z) and its face normal.
// Unlike HeightField.Sample this follows the planar triangles the physics sees.
func (c *Collider) HeightAt(x, z float64) (height float64, normal mgl64.Vec3, ok bool) {
	i, j, fx, fz, ok := c.cellAt(x, z)
	if !ok {
		return 0, mgl64.Vec3{}, false
	}

	tris := c.cellTriangles(i, j)
	tri := tris[0]
	if fx+fz > 1 {
		tri = tris[1]
	}
	normal = faceNormal(tri)

	// Plane through tri[0]: n·(p - p0) = 0 solved for y.
	p0 := tri[0]
	height = p0[1] - (normal[0]*(x-p0[0])+normal[2]*(z-p0[2]))/normal[1]
	return height, normal, true
}

// Raycast intersects the ray with the collider within maxDist and returns the nearest hit.
// Only cells under the ray's horizontal extent are tested.
func (c *Collider) Raycast(r picking.Ray, maxDist float64) (Hit, bool) {
	if maxDist <= 0 {
		return Hit{}, false
	}
	end := r.At(maxDist)

	half := c.size / 2
	loX, hiX := math.Min(r.Origin[0], end[0]), math.Max(r.Origin[0], end[0])
	loZ, hiZ := math.Min(r.Origin[2], end[2]), math.Max(r.Origin[2], end[2])
	if hiX < -half || loX > half || hiZ < -half || loZ > half {
		return Hit{}, false
	}

	i0 := clampIndex(int(math.Floor((loX+half)/c.cell)), c.segments-1)
	i1 := clampIndex(int(math.Floor((hiX+half)/c.cell)), c.segments-1)
	j0 := clampIndex(int(math.Floor((loZ+half)/c.cell)), c.segments-1)
	j1 := clampIndex(int(math.Floor((hiZ+half)/c.cell)), c.segments-1)

	best := Hit{Distance: math.Inf(1)}
	found := false
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			for _, tri := range c.cellTriangles(i, j) {
				t, hit := r.IntersectTriangle(tri[0], tri[1], tri[2])
				if !hit || t > maxDist || t >= best.Distance {
					continue
				}
				best = Hit{Point: r.At(t), Normal: faceNormal(tri), Distance: t}
				found = true
			}
		}
	}
	return best, found
}

func faceNormal(tri [3]mgl64.Vec3) mgl64.Vec3 {
	return tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
}
