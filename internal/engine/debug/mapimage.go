package debug

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/winter-sled/internal/engine/terrain"
)

// Point is a coloured dot at a world XZ position.
type Point struct {
	X, Z   float64
	Color  colorful.Color
	Radius int
}

// MapImage draws the terrain mesh colours top-down, one pixel block per grid
// vertex, with -Z at the top.
type MapImage struct {
	*image.RGBA
	worldSize float64
}

// NewMapImage renders the terrain at scale pixels per grid cell.
func NewMapImage(mesh *terrain.Mesh, hf *terrain.HeightField, scale int) *MapImage {
	scale = max(scale, 1)
	stride := hf.Segments() + 1
	side := stride * scale
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	for j := range stride {
		for i := range stride {
			c := mesh.Vertices[j*stride+i].Color
			rgba := toRGBA(colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])})
			for dy := range scale {
				for dx := range scale {
					img.SetRGBA(i*scale+dx, j*scale+dy, rgba)
				}
			}
		}
	}
	return &MapImage{RGBA: img, worldSize: hf.Size()}
}

// Pixel converts a world XZ position to image coordinates.
func (m *MapImage) Pixel(x, z float64) (px, py int, ok bool) {
	side := float64(m.Bounds().Dx())
	half := m.worldSize / 2
	u := (x + half) / m.worldSize
	v := (z + half) / m.worldSize
	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		return 0, 0, false
	}
	return int(gomath.Min(u*side, side-1)), int(gomath.Min(v*side, side-1)), true
}

// Plot draws filled squares for each point on the terrain.
func (m *MapImage) Plot(points ...Point) {
	for _, p := range points {
		px, py, ok := m.Pixel(p.X, p.Z)
		if !ok {
			continue
		}
		rgba := toRGBA(p.Color)
		r := max(p.Radius, 0)
		for y := py - r; y <= py+r; y++ {
			for x := px - r; x <= px+r; x++ {
				if image.Pt(x, y).In(m.Bounds()) {
					m.SetRGBA(x, y, rgba)
				}
			}
		}
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
