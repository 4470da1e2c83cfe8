// Package placement scatters gift markers for catalog entries over the terrain.
package placement

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/winter-sled/internal/engine/picking"
	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/internal/game/catalog"
	"github.com/Faultbox/winter-sled/pkg/rng"
)

const (
	// Attempts is the number of polar samples tried per marker.
	Attempts = 12
	// UsableFraction limits markers to this share of the terrain half-width.
	UsableFraction = 0.88
	// Lift is the height of a marker's centre above the ground.
	Lift = 0.95
	// BoxSize is the edge length of a gift box.
	BoxSize = 1.1
	// SensorScale sizes the trigger volume relative to the box.
	SensorScale = 0.55
	// Variants is the number of gift box models.
	Variants = 4
)

// Fallback is where a marker lands when no sample hit the terrain.
var Fallback = mgl64.Vec3{0, 4, 0}

// Palette is the base set of marker tints.
var Palette = []string{"#38bdf8", "#f97316", "#a855f7", "#facc15", "#22c55e", "#ec4899"}

// Marker is a gift box standing in for one catalog entry.
type Marker struct {
	Dapp     catalog.Dapp
	Index    int
	Position mgl64.Vec3
	// Placed is false when every attempt missed and Position is Fallback.
	Placed  bool
	Variant int
	Tint    colorful.Color
	Sensor  picking.AABB
}

// ID returns the catalog id of the marker.
func (m Marker) ID() string { return m.Dapp.ID }

// Place computes one marker per catalog entry. size is the full terrain
// width. Results depend only on the seed, the entry id and its index.
func Place(c *catalog.Catalog, seed rng.Seed, sample terrain.Sampler, size float64) ([]Marker, error) {
	if seed.IsZero() {
		return nil, rng.ErrMalformedSeed
	}
	if !(size > 0) || gomath.IsInf(size, 0) {
		return nil, fmt.Errorf("placement: %w: %v", terrain.ErrInvalidSize, size)
	}
	usable := size / 2 * UsableFraction
	half := SensorScale * BoxSize

	markers := make([]Marker, 0, c.Len())
	for i, d := range c.All() {
		r := seed.Derive(fmt.Sprintf("%s-%d", d.ID, i))
		m := Marker{Dapp: d, Index: i, Position: Fallback}
		for range Attempts {
			angle := r.Float64() * gomath.Pi * 2
			radius := gomath.Sqrt(r.Float64()) * usable
			x := gomath.Cos(angle) * radius
			z := gomath.Sin(angle) * radius
			if sample == nil {
				continue
			}
			if h, ok := sample(x, z); ok {
				m.Position = mgl64.Vec3{x, h + Lift, z}
				m.Placed = true
				break
			}
		}
		m.Variant = r.IntN(Variants)
		m.Tint = tint(i, r)
		m.Sensor = picking.CenteredAABB(m.Position, mgl64.Vec3{half, half, half})
		markers = append(markers, m)
	}
	return markers, nil
}

// tint picks the palette colour for index i and nudges its hue and lightness.
func tint(i int, r *rng.RNG) colorful.Color {
	base, err := colorful.Hex(Palette[i%len(Palette)])
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	h, s, l := base.Hsl()
	h = gomath.Mod(h+(r.Float64()-0.5)*16+360, 360)
	l = gomath.Min(gomath.Max(l+(r.Float64()-0.5)*0.08, 0), 1)
	return colorful.Hsl(h, s, l).Clamped()
}

// Placed counts markers that landed on the terrain.
func Placed(markers []Marker) int {
	n := 0
	for _, m := range markers {
		if m.Placed {
			n++
		}
	}
	return n
}
