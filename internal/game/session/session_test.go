package session

import (
	"context"
	"errors"
	gomath "math"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/winter-sled/internal/config"
	"github.com/Faultbox/winter-sled/internal/engine/input/script"
	"github.com/Faultbox/winter-sled/internal/engine/picking"
	"github.com/Faultbox/winter-sled/internal/engine/terrain"
	"github.com/Faultbox/winter-sled/internal/game/placement"
	"github.com/Faultbox/winter-sled/internal/game/sled"
	"github.com/Faultbox/winter-sled/internal/telemetry"
	"github.com/Faultbox/winter-sled/pkg/rng"
)

const dt = 1.0 / 60

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Session.Seed = "session-test"
	cfg.Terrain.Size = 120
	cfg.Terrain.Segments = 32
	cfg.Terrain.Amplitude = 6
	return cfg
}

func newSession(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	s, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// gather moves the first n markers onto the sled.
func gather(s *Session, n int) {
	pos := s.Body().Position()
	half := placement.SensorScale * placement.BoxSize
	for i := range n {
		s.markers[i].Position = pos
		s.markers[i].Sensor = picking.CenteredAABB(pos, mgl64.Vec3{half, half, half})
	}
}

func TestNew(t *testing.T) {
	s := newSession(t, testConfig(t))

	if len(s.Markers()) != s.Catalog().Len() || s.Catalog().Len() == 0 {
		t.Errorf("markers %d catalog %d", len(s.Markers()), s.Catalog().Len())
	}
	if s.HeightField().Segments() != 32 || s.Mesh().TriangleCount() != 2*32*32 {
		t.Errorf("segments %d triangles %d", s.HeightField().Segments(), s.Mesh().TriangleCount())
	}

	pos := s.Body().Position()
	ground, ok := s.HeightField().Sample(pos.X(), pos.Z())
	if !ok {
		t.Fatal("spawn is off the terrain")
	}
	want := ground + 0.25 + 0.05
	if gomath.Abs(pos.Y()-want) > 1e-9 {
		t.Errorf("spawn y = %v, want %v", pos.Y(), want)
	}
	if got := s.Camera().Position().Y(); got < pos.Y() {
		t.Errorf("camera below sled: %v", got)
	}
	if s.Tick() != 0 || s.Elapsed() != 0 {
		t.Errorf("tick %d elapsed %v", s.Tick(), s.Elapsed())
	}
}

func TestNewMarkerLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.MarkerLimit = 5
	s := newSession(t, cfg)
	if len(s.Markers()) != 5 {
		t.Errorf("markers = %d, want 5", len(s.Markers()))
	}
}

func TestNewErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.Seed = ""
	if _, err := New(cfg, nil, nil); !errors.Is(err, rng.ErrMalformedSeed) {
		t.Errorf("empty seed: got %v", err)
	}

	cfg = testConfig(t)
	cfg.Terrain.Segments = 0
	if _, err := New(cfg, nil, nil); !errors.Is(err, terrain.ErrInvalidSegments) {
		t.Errorf("zero segments: got %v", err)
	}

	cfg = testConfig(t)
	cfg.Data.CatalogPath = filepath.Join(t.TempDir(), "missing.csv")
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("expected an error for a missing catalog")
	}
}

func TestStepSkipsInvalidDt(t *testing.T) {
	s := newSession(t, testConfig(t))
	before := s.Body().Position()
	for _, bad := range []float64{0, -dt, gomath.NaN(), gomath.Inf(1)} {
		f := s.Step(sled.InputState{Forward: true}, bad)
		if !f.Result.Skipped {
			t.Errorf("dt %v not skipped", bad)
		}
	}
	if s.Tick() != 0 || s.Body().Position() != before {
		t.Errorf("world moved: tick %d pos %v", s.Tick(), s.Body().Position())
	}
}

func TestStepDrives(t *testing.T) {
	s := newSession(t, testConfig(t))
	var f Frame
	for range 120 {
		f = s.Step(sled.InputState{Forward: true}, dt)
	}
	if f.Tick != 120 || s.Tick() != 120 {
		t.Errorf("tick = %d", f.Tick)
	}
	if gomath.Abs(s.Elapsed()-2) > 1e-9 {
		t.Errorf("elapsed = %v", s.Elapsed())
	}
	if s.Tracker().Distance() <= 0 {
		t.Error("expected distance travelled")
	}
	if !finiteVec(f.State.Position) {
		t.Errorf("non-finite position %v", f.State.Position)
	}
	if ground, ok := s.HeightField().Sample(f.State.Position.X(), f.State.Position.Z()); ok && f.State.Position.Y() < ground {
		t.Errorf("sled below ground: %v < %v", f.State.Position.Y(), ground)
	}
}

func finiteVec(v mgl64.Vec3) bool {
	for _, c := range v {
		if gomath.IsNaN(c) || gomath.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestDeterministic(t *testing.T) {
	a := newSession(t, testConfig(t))
	b := newSession(t, testConfig(t))

	if !slices.Equal(a.HeightField().Heights(), b.HeightField().Heights()) {
		t.Fatal("heights differ")
	}
	for i := range a.Markers() {
		if a.Markers()[i].Position != b.Markers()[i].Position {
			t.Fatalf("marker %d differs", i)
		}
	}

	in := []sled.InputState{{Forward: true}, {Forward: true, Left: true}, {Brake: true}}
	for i := range 90 {
		fa := a.Step(in[i/30], dt)
		fb := b.Step(in[i/30], dt)
		if fa.State != fb.State {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, fa.State, fb.State)
		}
	}
}

func TestDiscovery(t *testing.T) {
	s := newSession(t, testConfig(t))
	gather(s, 1)

	f := s.Step(sled.InputState{}, dt)
	if len(f.Discoveries) != 1 || f.Discoveries[0].ID != s.Markers()[0].ID() {
		t.Fatalf("discoveries = %+v", f.Discoveries)
	}
	if f.Found != 1 || f.XP == 0 {
		t.Errorf("found %d xp %d", f.Found, f.XP)
	}
	if s.Remaining() != len(s.Markers())-1 {
		t.Errorf("remaining = %d", s.Remaining())
	}

	f = s.Step(sled.InputState{}, dt)
	if len(f.Discoveries) != 0 || f.Found != 1 {
		t.Errorf("repeat discovery: %+v", f.Discoveries)
	}
}

func TestQuestRewardClaimed(t *testing.T) {
	s := newSession(t, testConfig(t))
	gather(s, 3)

	f := s.Step(sled.InputState{}, dt)
	if len(f.Discoveries) != 3 {
		t.Fatalf("discoveries = %d", len(f.Discoveries))
	}
	if !slices.Contains(f.Claimed, "first-steps") {
		t.Errorf("claimed = %v", f.Claimed)
	}
	gained := 0
	for _, d := range f.Discoveries {
		gained += d.XP
	}
	if f.XP != gained+80 {
		t.Errorf("xp = %d, want %d", f.XP, gained+80)
	}
}

func TestQuestPersistence(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.QuestSavePath = filepath.Join(t.TempDir(), "quests.yaml")

	s := newSession(t, cfg)
	gather(s, 2)
	s.Step(sled.InputState{}, dt)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := newSession(t, cfg)
	if got := restored.Tracker().Visited(); len(got) != 2 {
		t.Errorf("visited = %v", got)
	}
	if restored.Tracker().XP() != s.Tracker().XP() {
		t.Errorf("xp %d vs %d", restored.Tracker().XP(), s.Tracker().XP())
	}
	if restored.Remaining() != len(restored.Markers())-2 {
		t.Errorf("remaining = %d", restored.Remaining())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	s := newSession(t, testConfig(t))
	if err := s.Save(); err != nil {
		t.Errorf("Save: %v", err)
	}
}

func TestHUDAndRecord(t *testing.T) {
	s := newSession(t, testConfig(t))
	f := s.Step(sled.InputState{Forward: true}, dt)

	hud := s.HUD()
	if !strings.HasPrefix(hud, "Winter Sled") || !strings.Contains(hud, "gifts 0/") {
		t.Errorf("hud = %q", hud)
	}

	rec := f.Record()
	if rec.Tick != 1 || rec.X != f.State.Position.X() || rec.Speed != f.State.Speed() || rec.Level != 1 {
		t.Errorf("record = %+v", rec)
	}
}

func TestControllerParams(t *testing.T) {
	c := config.Default().Sled
	c.MaxSpeed = 12
	c.HalfExtents = [3]float64{0.5, 0.4, 1}
	p := ControllerParams(c)
	if p.MaxSpeed != 12 || p.HalfHeight != 0.4 || p.AlignStrength != sled.DefaultParams().AlignStrength {
		t.Errorf("unexpected %+v", p)
	}

	box := BoxConfig(c, mgl64.Vec3{1, 2, 3})
	if box.Mass != c.Mass || box.HalfExtents != (mgl64.Vec3{0.5, 0.4, 1}) || box.Position != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("unexpected %+v", box)
	}
}

func TestRespawn(t *testing.T) {
	s := newSession(t, testConfig(t))
	start := s.Body().Position()
	for range 60 {
		s.Step(sled.InputState{Forward: true, Boost: true}, dt)
	}
	if s.Body().Position() == start {
		t.Fatal("sled did not move")
	}
	s.Respawn()
	if got := s.Body().Position(); !got.ApproxEqualThreshold(start, 1e-9) {
		t.Errorf("position = %v, want %v", got, start)
	}
	if s.Body().Velocity() != (mgl64.Vec3{}) {
		t.Errorf("velocity = %v", s.Body().Velocity())
	}
}

func TestReplay(t *testing.T) {
	s := newSession(t, testConfig(t))
	sc, err := script.New("run",
		script.Step{Ticks: 30, Keys: []string{"forward"}, Pitch: -0.1},
		script.Step{Ticks: 30, Keys: []string{"forward", "right"}})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := telemetry.NewRecorder("", "session-test", 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Replay(context.Background(), sc, 90, dt, rec); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if s.Tick() != 90 {
		t.Errorf("tick = %d", s.Tick())
	}
	sum := rec.Summary()
	if sum.Ticks != 90 || sum.MaxSpeed <= 0 {
		t.Errorf("summary %+v", sum)
	}
	want := sled.DefaultParams().DefaultPitch - 0.1
	if gomath.Abs(s.Controller().Pitch()-want) > 1e-9 {
		t.Errorf("pitch = %v, want %v", s.Controller().Pitch(), want)
	}
}

func TestReplayErrors(t *testing.T) {
	s := newSession(t, testConfig(t))
	sc, err := script.New("idle", script.Step{Ticks: 1})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Replay(context.Background(), nil, 10, dt, nil); !errors.Is(err, script.ErrInvalid) {
		t.Errorf("nil script: got %v", err)
	}
	if err := s.Replay(context.Background(), sc, 10, 0, nil); err == nil {
		t.Error("expected an error for a zero step")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Replay(ctx, sc, 10, dt, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: got %v", err)
	}
	if s.Tick() != 0 {
		t.Errorf("tick = %d", s.Tick())
	}
}

func TestTrailAndMap(t *testing.T) {
	s := newSession(t, testConfig(t))
	for range 3 * trailEvery {
		s.Step(sled.InputState{Forward: true}, dt)
	}
	if len(s.Trail()) != 3 {
		t.Errorf("trail has %d points, want 3", len(s.Trail()))
	}

	img := s.Map(2)
	if side := (s.HeightField().Segments() + 1) * 2; img.Bounds().Dx() != side {
		t.Errorf("map width %d, want %d", img.Bounds().Dx(), side)
	}
	pos := s.Body().Position()
	px, py, ok := img.Pixel(pos.X(), pos.Z())
	if !ok {
		t.Fatal("sled off the map")
	}
	if c := img.RGBAAt(px, py); c.R < 200 || c.G > 100 {
		t.Errorf("sled pixel = %v", c)
	}
}
