package math

import (
	"math"
	"testing"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{0.25, 0.25},
	}

	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("WrapAngle(%v) = %v, outside (-π, π]", tt.in, got)
		}
	}
}

func TestShortestAngleDelta(t *testing.T) {
	// Crossing the ±π seam must take the short way round.
	got := ShortestAngleDelta(-math.Pi+0.1, math.Pi-0.1)
	if math.Abs(got-0.2) > 1e-9 {
		t.Errorf("ShortestAngleDelta across seam = %v, want 0.2", got)
	}

	got = ShortestAngleDelta(0.5, 0.2)
	if math.Abs(got-0.3) > 1e-9 {
		t.Errorf("ShortestAngleDelta(0.5, 0.2) = %v, want 0.3", got)
	}
}

func TestDampFactor(t *testing.T) {
	if f := DampFactor(0.02, 6, 0); f != 0 {
		t.Errorf("DampFactor with dt=0 = %v, want 0", f)
	}
	if f := DampFactor(0.02, 6, -1); f != 0 {
		t.Errorf("DampFactor with dt<0 = %v, want 0", f)
	}

	f := DampFactor(0.02, 1, 1)
	if math.Abs(f-0.98) > 1e-9 {
		t.Errorf("DampFactor(0.02, 1, 1) = %v, want 0.98", f)
	}

	small := DampFactor(0.02, 6, 1.0/120)
	large := DampFactor(0.02, 6, 1.0/30)
	if !(small > 0 && small < large && large < 1) {
		t.Errorf("DampFactor should grow with dt: small=%v large=%v", small, large)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) {
		t.Error("1 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Error("NaN and Inf should not be finite")
	}
}
