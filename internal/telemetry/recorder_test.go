package telemetry

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

func ticks(n int) []TickRecord {
	out := make([]TickRecord, n)
	for i := range out {
		out[i] = TickRecord{
			Tick:     i,
			Time:     float64(i+1) / 60,
			X:        float64(i) * 3,
			Z:        float64(i) * 4,
			Speed:    float64(i),
			OnGround: i%2 == 0,
			XP:       i * 10,
			Level:    1,
		}
	}
	return out
}

func TestRecorderWritesTrace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r, err := NewRecorder(dir, "seed-1", 2)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	for _, rec := range ticks(5) {
		if err := r.Record(rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "trace.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows []*TickRecord
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading trace: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 sampled rows, got %d", len(rows))
	}
	for i, want := range []int{0, 2, 4} {
		if rows[i].Tick != want {
			t.Errorf("row %d tick = %d, want %d", i, rows[i].Tick, want)
		}
	}
	if !rows[1].OnGround || rows[2].XP != 40 {
		t.Errorf("unexpected row %+v", rows[2])
	}
}

func TestSummary(t *testing.T) {
	r, err := NewRecorder("", "abc", 1)
	if err != nil {
		t.Fatal(err)
	}
	recs := ticks(5)
	recs[3].Respawned = true
	recs[4].Discovered = 2
	recs[4].Healed = 1
	for _, rec := range recs {
		if err := r.Record(rec); err != nil {
			t.Fatal(err)
		}
	}

	s := r.Summary()
	if s.Seed != "abc" || s.Ticks != 5 || s.Respawns != 1 || s.Discoveries != 2 || s.Healed != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.MeanSpeed != 2 || s.MaxSpeed != 4 {
		t.Errorf("speed mean %v max %v", s.MeanSpeed, s.MaxSpeed)
	}
	if gomath.Abs(s.SpeedStdDev-gomath.Sqrt(2.5)) > 1e-12 {
		t.Errorf("stddev = %v", s.SpeedStdDev)
	}
	// Steps of 5 units each, except the respawn tick.
	if gomath.Abs(s.Distance-15) > 1e-9 {
		t.Errorf("distance = %v, want 15", s.Distance)
	}
	if gomath.Abs(s.Airborne-0.4) > 1e-12 {
		t.Errorf("airborne = %v", s.Airborne)
	}
	if gomath.Abs(s.Duration-5.0/60) > 1e-12 || s.XP != 40 {
		t.Errorf("duration %v xp %d", s.Duration, s.XP)
	}

	// No output directory: nothing to write.
	if err := r.WriteSummary(); err != nil {
		t.Errorf("WriteSummary: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestEmptySummary(t *testing.T) {
	r, err := NewRecorder("", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if s := r.Summary(); s.Ticks != 0 || s.MeanSpeed != 0 || s.Airborne != 0 {
		t.Errorf("unexpected %+v", s)
	}
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(dir, "s", 1)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	for _, rec := range ticks(3) {
		if err := r.Record(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.WriteSummary(); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var got Summary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Ticks != 3 || got.Seed != "s" || got.MaxSpeed != 2 {
		t.Errorf("unexpected %+v", got)
	}
}
