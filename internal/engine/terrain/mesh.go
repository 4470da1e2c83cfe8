package terrain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/colorgrad"

	"github.com/Faultbox/winter-sled/internal/engine/lighting"
)

// Shading strengths applied on top of the palette color.
const (
	slopeDarken     = 0.22 // Lightness removed on vertical faces
	slopeSaturate   = 0.18 // Saturation added on vertical faces
	sunContribution = 0.35 // Share of lightness driven by the sun
)

// BuildMesh creates the render mesh from a heightfield: one vertex per grid
// point, two triangles per cell, smooth normals and palette colors shaded by
// slope and sun. The result depends only on its inputs.
func BuildMesh(hf *HeightField, palette []string, sun lighting.Sun) (*Mesh, error) {
	grad, err := buildGradient(palette)
	if err != nil {
		return nil, err
	}

	s := hf.segments
	stride := s + 1
	vertices := make([]Vertex, stride*stride)

	lo, hi := hf.MinMax()
	span := hi - lo

	for j := 0; j <= s; j++ {
		for i := 0; i <= s; i++ {
			x, z := hf.GridPosition(i, j)
			h := hf.heights[j*stride+i]
			n := hf.normalAt(i, j)

			t := 0.0
			if span > 0 {
				t = (h - lo) / span
			}

			vertices[j*stride+i] = Vertex{
				Position: [3]float32{float32(x), float32(h), float32(z)},
				Normal:   [3]float32{float32(n[0]), float32(n[1]), float32(n[2])},
				Color:    shade(grad.At(t), n, sun),
			}
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  gridIndices(s),
		Bounds: Bounds{
			Min: [3]float32{float32(-hf.size / 2), float32(lo), float32(-hf.size / 2)},
			Max: [3]float32{float32(hf.size / 2), float32(hi), float32(hf.size / 2)},
		},
	}, nil
}

func buildGradient(palette []string) (grad colorgrad.Gradient, err error) {
	if len(palette) < 2 {
		return grad, fmt.Errorf("%w: need at least 2 stops, got %d", ErrInvalidPalette, len(palette))
	}
	grad, err = colorgrad.NewGradient().HtmlColors(palette...).Build()
	if err != nil {
		return grad, fmt.Errorf("%w: %w", ErrInvalidPalette, err)
	}
	return grad, nil
}

// shade modulates a palette color by steepness and sun exposure.
func shade(base colorful.Color, n mgl64.Vec3, sun lighting.Sun) [4]float32 {
	h, s, l := base.Hsl()

	slope := 1 - math.Abs(n[1])
	light := sun.Intensity(n)

	l = l*(1-sunContribution) + l*sunContribution*light - slope*slopeDarken
	s += slope * slopeSaturate

	c := colorful.Hsl(h, clampUnit(s), clampUnit(l)).Clamped()
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
}

// normalAt computes a smooth vertex normal from central differences,
// falling back to one-sided differences on the border.
func (hf *HeightField) normalAt(i, j int) mgl64.Vec3 {
	s := hf.segments
	il, ir := max(i-1, 0), min(i+1, s)
	jl, jr := max(j-1, 0), min(j+1, s)

	dx := (hf.At(ir, j) - hf.At(il, j)) / (float64(ir-il) * hf.cell)
	dz := (hf.At(i, jr) - hf.At(i, jl)) / (float64(jr-jl) * hf.cell)

	return mgl64.Vec3{-dx, 1, -dz}.Normalize()
}

// gridIndices returns the triangle list for an S×S grid. Each cell (i, j)
// is split into (i,j)-(i,j+1)-(i+1,j) and (i,j+1)-(i+1,j+1)-(i+1,j), both
// wound so their normals face +Y.
func gridIndices(s int) []uint32 {
	stride := uint32(s + 1)
	indices := make([]uint32, 0, s*s*6)
	for j := range uint32(s) {
		for i := range uint32(s) {
			a := j*stride + i
			b := (j+1)*stride + i
			c := (j+1)*stride + i + 1
			d := j*stride + i + 1
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return indices
}
