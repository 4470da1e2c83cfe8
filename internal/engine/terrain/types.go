// Package terrain builds the seeded snowfield: heightfield synthesis, the
// bilinear height sampler, the render mesh with vertex colors and the static
// collision surface.
package terrain

import (
	"errors"
	"fmt"
)

// MaxSegments bounds the grid resolution.
const MaxSegments = 2048

var (
	// ErrInvalidSegments is returned when the segment count is outside [1, MaxSegments].
	ErrInvalidSegments = errors.New("terrain: invalid segment count")
	// ErrInvalidAmplitude is returned for a non-positive amplitude.
	ErrInvalidAmplitude = errors.New("terrain: invalid amplitude")
	// ErrInvalidSize is returned for a non-positive world size.
	ErrInvalidSize = errors.New("terrain: invalid size")
	// ErrNonFinite is returned when supplied heights contain NaN or infinity.
	ErrNonFinite = errors.New("terrain: non-finite height")
	// ErrInvalidPalette is returned when the palette has fewer than two stops or a bad color.
	ErrInvalidPalette = errors.New("terrain: invalid palette")
)

// Params holds heightfield build parameters.
type Params struct {
	Size      float64 // World units per side
	Segments  int     // Grid segments per side
	Amplitude float64 // Vertical scale
}

// DefaultParams returns the standard 420-unit snowfield.
func DefaultParams() Params {
	return Params{Size: 420, Segments: 180, Amplitude: 16}
}

// Validate checks the parameters without building anything.
func (p Params) Validate() error {
	if p.Segments < 1 || p.Segments > MaxSegments {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSegments, p.Segments, MaxSegments)
	}
	if !(p.Amplitude > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmplitude, p.Amplitude)
	}
	if !(p.Size > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSize, p.Size)
	}
	return nil
}

// Sampler answers terrain height queries. ok is false where there is no
// ground, which is distinct from ground at elevation zero.
type Sampler func(x, z float64) (height float64, ok bool)

// Vertex represents a terrain mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh holds the terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
