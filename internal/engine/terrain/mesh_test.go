package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/winter-sled/internal/engine/lighting"
)

var testPalette = []string{"#dce9f5", "#eff6ff", "#f8fafc", "#f1f5f9"}

func TestBuildMesh(t *testing.T) {
	hf := buildTestField(t, "mesh", Params{Size: 60, Segments: 12, Amplitude: 9})

	mesh, err := BuildMesh(hf, testPalette, lighting.NewSun(45, 50))
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}

	if got, want := len(mesh.Vertices), 13*13; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}
	if got, want := mesh.TriangleCount(), 2*12*12; got != want {
		t.Errorf("expected %d triangles, got %d", want, got)
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}

	for k, v := range mesh.Vertices {
		n := v.Normal
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		if math.Abs(length-1) > 1e-5 {
			t.Errorf("vertex %d normal not unit: %v", k, n)
		}
		if n[1] <= 0 {
			t.Errorf("vertex %d normal points down: %v", k, n)
		}
		for c := range 3 {
			if v.Color[c] < 0 || v.Color[c] > 1 {
				t.Errorf("vertex %d color out of range: %v", k, v.Color)
			}
		}
		if v.Color[3] != 1 {
			t.Errorf("vertex %d alpha = %v", k, v.Color[3])
		}
	}

	// Positions copy the grid samples.
	v := mesh.Vertices[5*13+7]
	x, z := hf.GridPosition(7, 5)
	if v.Position != [3]float32{float32(x), float32(hf.At(7, 5)), float32(z)} {
		t.Errorf("vertex position %v does not match grid point", v.Position)
	}

	lo, hi := hf.MinMax()
	if mesh.Bounds.Min[1] != float32(lo) || mesh.Bounds.Max[1] != float32(hi) {
		t.Errorf("bounds %v do not match height range [%v, %v]", mesh.Bounds, lo, hi)
	}
}

func TestBuildMeshTrianglesFaceUp(t *testing.T) {
	hf := buildTestField(t, "winding", Params{Size: 20, Segments: 4, Amplitude: 2})
	mesh, err := BuildMesh(hf, testPalette, lighting.NewSun(0, 90))
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}

	for k := 0; k < len(mesh.Indices); k += 3 {
		a := mesh.Vertices[mesh.Indices[k]].Position
		b := mesh.Vertices[mesh.Indices[k+1]].Position
		c := mesh.Vertices[mesh.Indices[k+2]].Position
		// Y component of (b-a)×(c-a)
		ny := (b[2]-a[2])*(c[0]-a[0]) - (b[0]-a[0])*(c[2]-a[2])
		if ny <= 0 {
			t.Fatalf("triangle %d faces down", k/3)
		}
	}
}

func TestBuildMeshDeterministic(t *testing.T) {
	p := Params{Size: 40, Segments: 8, Amplitude: 5}
	sun := lighting.NewSun(30, 40)

	a, err := BuildMesh(buildTestField(t, "same", p), testPalette, sun)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildMesh(buildTestField(t, "same", p), testPalette, sun)
	if err != nil {
		t.Fatal(err)
	}
	for k := range a.Vertices {
		if a.Vertices[k] != b.Vertices[k] {
			t.Fatalf("vertex %d differs between builds", k)
		}
	}
}

func TestBuildMeshPaletteErrors(t *testing.T) {
	hf := buildTestField(t, "palette", Params{Size: 10, Segments: 2, Amplitude: 1})

	tests := []struct {
		name    string
		palette []string
	}{
		{"empty", nil},
		{"single stop", []string{"#ffffff"}},
		{"bad color", []string{"#ffffff", "not-a-color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildMesh(hf, tt.palette, lighting.NewSun(0, 90))
			if !errors.Is(err, ErrInvalidPalette) {
				t.Errorf("expected ErrInvalidPalette, got %v", err)
			}
		})
	}
}
