package terrain

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/winter-sled/pkg/rng"
)

// Octave weights, frequencies and coordinate offsets for the layered noise.
var octaves = [3]struct {
	weight, freq, offset float64
}{
	{0.65, 1.6, 0},
	{0.25, 4.2, 17.3},
	{0.10, 9.5, 41.7},
}

const (
	falloffExponent = 1.6
	ridgeWeight     = 0.35
	ridgeFreqX      = 2.2
	ridgeFreqZ      = 1.8
)

// HeightField is an immutable (S+1)×(S+1) grid of heights spanning
// [-Size/2, Size/2] on both axes. Safe for concurrent readers.
type HeightField struct {
	segments int
	size     float64
	cell     float64
	heights  []float64 // row-major: index j*(segments+1)+i, i along X, j along Z
	min, max float64
}

// BuildHeightField synthesizes the heightfield for a seed. The same seed and
// parameters always produce bit-identical heights.
func BuildHeightField(p Params, seed rng.Seed) (*HeightField, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if seed.IsZero() {
		return nil, fmt.Errorf("build heightfield: %w: seed not set", rng.ErrMalformedSeed)
	}

	var noise [3]opensimplex.Noise
	for k := range noise {
		noise[k] = opensimplex.New(seed.DeriveInt64(fmt.Sprintf("terrain/octave/%d", k+1)))
	}

	s := p.Segments
	stride := s + 1
	heights := make([]float64, stride*stride)
	for j := 0; j <= s; j++ {
		nz := float64(j)/float64(s) - 0.5
		for i := 0; i <= s; i++ {
			nx := float64(i)/float64(s) - 0.5

			var n float64
			for k, o := range octaves {
				n += o.weight * noise[k].Eval2(nx*o.freq+o.offset, nz*o.freq+o.offset)
			}
			ridge := math.Sin(nx*math.Pi*ridgeFreqX) * math.Cos(nz*math.Pi*ridgeFreqZ)

			heights[j*stride+i] = (n*p.Amplitude + ridge*ridgeWeight*p.Amplitude) * falloff(nx, nz)
		}
	}

	return &HeightField{
		segments: s,
		size:     p.Size,
		cell:     p.Size / float64(s),
		heights:  heights,
		min:      floats.Min(heights),
		max:      floats.Max(heights),
	}, nil
}

// FromHeights wraps an existing row-major (segments+1)² grid, for fixtures and
// imported fields. The slice is copied.
func FromHeights(size float64, segments int, heights []float64) (*HeightField, error) {
	if err := (Params{Size: size, Segments: segments, Amplitude: 1}).Validate(); err != nil {
		return nil, err
	}
	if want := (segments + 1) * (segments + 1); len(heights) != want {
		return nil, fmt.Errorf("%w: %d heights for %d segments (want %d)", ErrInvalidSegments, len(heights), segments, want)
	}
	for k, h := range heights {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, fmt.Errorf("%w: height %d is %v", ErrNonFinite, k, h)
		}
	}

	grid := make([]float64, len(heights))
	copy(grid, heights)
	return &HeightField{
		segments: segments,
		size:     size,
		cell:     size / float64(segments),
		heights:  grid,
		min:      floats.Min(grid),
		max:      floats.Max(grid),
	}, nil
}

// Flat returns a level field at the given height.
func Flat(size float64, segments int, height float64) (*HeightField, error) {
	heights := make([]float64, (segments+1)*(segments+1))
	for k := range heights {
		heights[k] = height
	}
	return FromHeights(size, segments, heights)
}

// falloff fades elevation to zero at the border. The radius is scaled so the
// edge midpoints sit at r=1 and every border point reaches zero.
func falloff(nx, nz float64) float64 {
	r := 2 * math.Hypot(nx, nz)
	f := 1 - math.Pow(r, falloffExponent)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Segments returns the grid segment count per side.
func (hf *HeightField) Segments() int { return hf.segments }

// Size returns the world size per side.
func (hf *HeightField) Size() float64 { return hf.size }

// CellSize returns the world distance between neighbouring grid points.
func (hf *HeightField) CellSize() float64 { return hf.cell }

// At returns the stored height at grid index (i, j). Indices are clamped to the grid.
func (hf *HeightField) At(i, j int) float64 {
	i = clampIndex(i, hf.segments)
	j = clampIndex(j, hf.segments)
	return hf.heights[j*(hf.segments+1)+i]
}

// GridPosition returns the world X/Z of grid index (i, j).
func (hf *HeightField) GridPosition(i, j int) (x, z float64) {
	half := hf.size / 2
	return -half + float64(i)*hf.cell, -half + float64(j)*hf.cell
}

// Heights returns a copy of the row-major height grid.
func (hf *HeightField) Heights() []float64 {
	out := make([]float64, len(hf.heights))
	copy(out, hf.heights)
	return out
}

// MinMax returns the lowest and highest stored heights.
func (hf *HeightField) MinMax() (lo, hi float64) {
	return hf.min, hf.max
}

// Sample returns the bilinearly interpolated height at world (x, z).
// Points outside the field, including NaN coordinates, report ok=false.
func (hf *HeightField) Sample(x, z float64) (float64, bool) {
	half := hf.size / 2
	if !(x >= -half && x <= half && z >= -half && z <= half) {
		return 0, false
	}

	gx := (x + half) / hf.cell
	gz := (z + half) / hf.cell

	i0 := clampIndex(int(math.Floor(gx)), hf.segments)
	j0 := clampIndex(int(math.Floor(gz)), hf.segments)
	i1 := min(i0+1, hf.segments)
	j1 := min(j0+1, hf.segments)

	tx := clampUnit(gx - float64(i0))
	tz := clampUnit(gz - float64(j0))

	stride := hf.segments + 1
	h00 := hf.heights[j0*stride+i0]
	h10 := hf.heights[j0*stride+i1]
	h01 := hf.heights[j1*stride+i0]
	h11 := hf.heights[j1*stride+i1]

	return lerp(lerp(h00, h10, tx), lerp(h01, h11, tx), tz), true
}

// Sampler returns Sample as a Sampler.
func (hf *HeightField) Sampler() Sampler {
	return hf.Sample
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
