package session

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/winter-sled/internal/engine/debug"
)

// trailEvery is the tick interval between recorded trail points.
const trailEvery = 15

var (
	trailColor = colorful.Color{R: 0.2, G: 0.25, B: 0.35}
	foundColor = colorful.Color{R: 0.45, G: 0.5, B: 0.55}
	sledColor  = colorful.Color{R: 0.94, G: 0.27, B: 0.27}
)

// Trail returns the sled positions sampled while stepping.
func (s *Session) Trail() []mgl64.Vec3 {
	return s.trail
}

// Map renders the terrain top-down with the trail, the gift boxes and the
// sled drawn over it.
func (s *Session) Map(scale int) *debug.MapImage {
	img := debug.NewMapImage(s.mesh, s.field, scale)

	points := make([]debug.Point, 0, len(s.trail)+len(s.markers)+1)
	for _, p := range s.trail {
		points = append(points, debug.Point{X: p.X(), Z: p.Z(), Color: trailColor})
	}
	for _, m := range s.markers {
		c := m.Tint
		if s.tracker.Discovered(m.ID()) {
			c = foundColor
		}
		points = append(points, debug.Point{X: m.Position.X(), Z: m.Position.Z(), Color: c, Radius: 2})
	}
	pos := s.body.Position()
	points = append(points, debug.Point{X: pos.X(), Z: pos.Z(), Color: sledColor, Radius: 3})

	img.Plot(points...)
	return img
}
