package physics

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/pkg/math"
)

const stepDt = 1.0 / 60

func sledBox(pos mgl64.Vec3) BoxConfig {
	return BoxConfig{
		Mass:           4.5,
		HalfExtents:    mgl64.Vec3{0.55, 0.25, 1.1},
		Position:       pos,
		LinearDamping:  0.12,
		AngularDamping: 0.8,
		Friction:       0.05,
	}
}

func flatWorld(t *testing.T, height float64) *World {
	t.Helper()
	hf, err := terrain.Flat(40, 8, height)
	if err != nil {
		t.Fatalf("Flat: %v", err)
	}
	return NewWorld(terrain.BuildCollider(hf), nil)
}

func TestFreeFall(t *testing.T) {
	w := NewWorld(nil, nil)
	cfg := sledBox(mgl64.Vec3{0, 100, 0})
	cfg.LinearDamping = 0
	b := w.AddBox(cfg)

	for range 60 {
		w.Step(stepDt)
	}
	if gomath.Abs(b.Velocity()[1]+28) > 1e-9 {
		t.Errorf("vy after 1s = %v, want -28", b.Velocity()[1])
	}
	if b.Grounded() {
		t.Error("no ground to touch")
	}
}

func TestStepIgnoresInvalidDt(t *testing.T) {
	w := NewWorld(nil, nil)
	b := w.AddBox(sledBox(mgl64.Vec3{0, 10, 0}))
	b.ApplyForce(mgl64.Vec3{1, 0, 0})

	for _, dt := range []float64{0, -1, gomath.NaN(), gomath.Inf(1)} {
		w.Step(dt)
	}
	if b.Position() != (mgl64.Vec3{0, 10, 0}) || b.Velocity() != (mgl64.Vec3{}) {
		t.Errorf("body moved: %v %v", b.Position(), b.Velocity())
	}
	if b.PendingForce() != (mgl64.Vec3{1, 0, 0}) {
		t.Error("skipped steps should keep accumulated force")
	}
}

func TestBodySettlesOnGround(t *testing.T) {
	w := flatWorld(t, 2)
	b := w.AddBox(sledBox(mgl64.Vec3{1, 5, -3}))

	for range 300 {
		w.Step(stepDt)
	}

	if !b.Grounded() {
		t.Fatal("expected body to rest on the ground")
	}
	if y := b.Position()[1]; gomath.Abs(y-2.25) > 0.02 {
		t.Errorf("rest height = %v, want ≈2.25", y)
	}
	d, ok := b.CastRayDown(1)
	if !ok || gomath.Abs(d-0.25) > 0.02 {
		t.Errorf("CastRayDown = (%v, %v), want ≈0.25", d, ok)
	}
	if _, ok := b.CastRayDown(0.1); ok {
		t.Error("short probe should miss")
	}
	if n := b.ContactNormal(); !n.ApproxEqualThreshold(math.Up, 1e-9) {
		t.Errorf("flat contact normal = %v", n)
	}
}

func TestImpulseIsImmediate(t *testing.T) {
	w := NewWorld(nil, nil)
	b := w.AddBox(sledBox(mgl64.Vec3{}))

	b.ApplyImpulse(mgl64.Vec3{9, 0, -4.5})
	if want := (mgl64.Vec3{2, 0, -1}); !b.Velocity().ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("velocity = %v, want %v", b.Velocity(), want)
	}
}

func TestForceAccumulatesUntilStep(t *testing.T) {
	w := NewWorld(nil, nil)
	cfg := sledBox(mgl64.Vec3{0, 10, 0})
	cfg.LinearDamping = 0
	b := w.AddBox(cfg)

	// Two halves of the weight cancel gravity.
	half := mgl64.Vec3{0, 4.5 * 28 / 2, 0}
	b.ApplyForce(half)
	b.ApplyForce(half)
	if b.Velocity() != (mgl64.Vec3{}) {
		t.Error("force must not act before the step")
	}

	w.Step(stepDt)
	if gomath.Abs(b.Velocity()[1]) > 1e-9 {
		t.Errorf("vy = %v, want 0", b.Velocity()[1])
	}
	if b.PendingForce() != (mgl64.Vec3{}) || b.PendingTorque() != (mgl64.Vec3{}) {
		t.Error("accumulators should clear after the step")
	}

	w.Step(stepDt)
	if b.Velocity()[1] >= 0 {
		t.Error("without the force gravity should act again")
	}
}

func TestTorqueTurnsHeading(t *testing.T) {
	w := flatWorld(t, 0)
	b := w.AddBox(sledBox(mgl64.Vec3{0, 0.25, 0}))

	for range 10 {
		b.ApplyTorque(mgl64.Vec3{0, -20, 0})
		w.Step(stepDt)
	}
	if b.Heading() <= 0 {
		t.Errorf("negative Y torque should raise the heading, got %v", b.Heading())
	}
	if got := math.Heading(b.Rotation()); gomath.Abs(got-b.Heading()) > 1e-9 {
		t.Errorf("Rotation heading %v disagrees with %v", got, b.Heading())
	}
	if w := b.AngularVelocity(); w[0] != 0 || w[2] != 0 {
		t.Errorf("only vertical spin should remain, got %v", w)
	}
}

func TestSetRotationSplitsHeading(t *testing.T) {
	w := NewWorld(nil, nil)
	b := w.AddBox(sledBox(mgl64.Vec3{}))

	b.SetRotation(math.QuatFromHeading(0.7))
	if gomath.Abs(b.Heading()-0.7) > 1e-9 {
		t.Errorf("heading = %v, want 0.7", b.Heading())
	}
	up := b.Rotation().Rotate(math.Up)
	if !up.ApproxEqualThreshold(math.Up, 1e-9) {
		t.Errorf("pure heading should stay upright, up = %v", up)
	}

	b.SetRotation(mgl64.Quat{W: gomath.NaN()})
	if b.Heading() != 0 {
		t.Errorf("invalid rotation should reset heading, got %v", b.Heading())
	}
}

func TestBodyTiltsOnSlope(t *testing.T) {
	// Ramp y = 0.5x.
	const segments = 4
	heights := make([]float64, (segments+1)*(segments+1))
	for j := 0; j <= segments; j++ {
		for i := 0; i <= segments; i++ {
			x := -10 + 5*float64(i)
			heights[j*(segments+1)+i] = 0.5 * x
		}
	}
	hf, err := terrain.FromHeights(20, segments, heights)
	if err != nil {
		t.Fatalf("FromHeights: %v", err)
	}
	w := NewWorld(terrain.BuildCollider(hf), nil)
	b := w.AddBox(sledBox(mgl64.Vec3{0, 0.26, 0}))

	for range 30 {
		w.Step(stepDt)
	}

	want := mgl64.Vec3{-0.5, 1, 0}.Normalize()
	up := b.Rotation().Rotate(math.Up)
	if !up.ApproxEqualThreshold(want, 0.02) {
		t.Errorf("body up = %v, want ≈%v", up, want)
	}
	if b.Velocity()[0] >= 0 {
		t.Errorf("body should slide downhill towards -X, vel = %v", b.Velocity())
	}
}

func TestBoundsFollowHeading(t *testing.T) {
	w := NewWorld(nil, nil)
	b := w.AddBox(sledBox(mgl64.Vec3{1, 2, 3}))

	box := b.Bounds()
	if !box.Max.Sub(box.Min).ApproxEqualThreshold(mgl64.Vec3{1.1, 0.5, 2.2}, 1e-9) {
		t.Errorf("unexpected size %v", box.Max.Sub(box.Min))
	}

	b.SetRotation(math.QuatFromHeading(gomath.Pi / 2))
	box = b.Bounds()
	if !box.Max.Sub(box.Min).ApproxEqualThreshold(mgl64.Vec3{2.2, 0.5, 1.1}, 1e-9) {
		t.Errorf("quarter turn should swap extents, got %v", box.Max.Sub(box.Min))
	}
}
