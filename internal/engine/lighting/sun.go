// Package lighting provides the directional sun used to shade terrain vertex colors.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SunDirection converts longitude/latitude angles in degrees to a light direction vector.
// Longitude is rotation around the Y axis, latitude is elevation from the horizon.
// Returns a normalized direction vector pointing towards the sun.
func SunDirection(longitude, latitude float64) mgl64.Vec3 {
	lonRad := longitude * math.Pi / 180.0
	latRad := latitude * math.Pi / 180.0

	// Spherical to Cartesian conversion
	x := math.Cos(latRad) * math.Sin(lonRad)
	y := math.Sin(latRad)
	z := math.Cos(latRad) * math.Cos(lonRad)

	return mgl64.Vec3{x, y, z}
}

// Sun is a directional light with an ambient floor.
type Sun struct {
	Direction mgl64.Vec3 // Normalized, pointing towards the sun
	Ambient   float64
	Diffuse   float64
}

// NewSun creates a sun at the given angles with the default ambient/diffuse split.
func NewSun(longitude, latitude float64) Sun {
	return Sun{
		Direction: SunDirection(longitude, latitude),
		Ambient:   0.55,
		Diffuse:   0.45,
	}
}

// Lambert returns the clamped cosine between a surface normal and the sun.
func (s Sun) Lambert(normal mgl64.Vec3) float64 {
	d := normal.Dot(s.Direction)
	if d < 0 {
		return 0
	}
	return d
}

// Intensity returns the light reaching a surface, in [Ambient, Ambient+Diffuse].
func (s Sun) Intensity(normal mgl64.Vec3) float64 {
	return s.Ambient + s.Diffuse*s.Lambert(normal)
}
