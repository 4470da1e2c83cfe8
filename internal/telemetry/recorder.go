package telemetry

import (
	"fmt"
	gomath "math"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Recorder writes trace rows to trace.csv and accumulates a Summary.
// With an empty directory nothing is written but the summary still
// accumulates.
type Recorder struct {
	dir         string
	seed        string
	sampleEvery int

	traceFile     *os.File
	headerWritten bool

	speeds   []float64
	airborne int
	distance float64
	last     *TickRecord
	summary  Summary
}

// NewRecorder creates the output directory and trace.csv when dir is set.
// sampleEvery below 1 records every tick.
func NewRecorder(dir, seed string, sampleEvery int) (*Recorder, error) {
	r := &Recorder{dir: dir, seed: seed, sampleEvery: max(sampleEvery, 1)}
	if dir == "" {
		return r, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "trace.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating trace.csv: %w", err)
	}
	r.traceFile = f
	return r, nil
}

// Record adds one tick. Only every sampleEvery-th tick is written to the
// trace; all ticks count toward the summary.
func (r *Recorder) Record(rec TickRecord) error {
	r.accumulate(rec)

	if r.traceFile == nil || rec.Tick%r.sampleEvery != 0 {
		return nil
	}

	records := []TickRecord{rec}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.traceFile); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.traceFile); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

func (r *Recorder) accumulate(rec TickRecord) {
	s := &r.summary
	s.Ticks++
	s.Duration = rec.Time
	if !gomath.IsNaN(rec.Speed) && !gomath.IsInf(rec.Speed, 0) {
		r.speeds = append(r.speeds, rec.Speed)
	}
	if !rec.OnGround {
		r.airborne++
	}
	if rec.Respawned {
		s.Respawns++
	} else if r.last != nil {
		d := gomath.Hypot(rec.X-r.last.X, rec.Z-r.last.Z)
		if !gomath.IsNaN(d) && !gomath.IsInf(d, 0) {
			r.distance += d
		}
	}
	s.Healed += rec.Healed
	s.Discoveries = rec.Discovered
	s.XP = rec.XP
	s.Level = rec.Level

	last := rec
	r.last = &last
}

// Summary returns the aggregate of every recorded tick.
func (r *Recorder) Summary() Summary {
	s := r.summary
	s.Seed = r.seed
	s.Distance = r.distance
	if len(r.speeds) > 0 {
		s.MeanSpeed = stat.Mean(r.speeds, nil)
		s.MaxSpeed = floats.Max(r.speeds)
	}
	if len(r.speeds) > 1 {
		s.SpeedStdDev = stat.StdDev(r.speeds, nil)
	}
	if s.Ticks > 0 {
		s.Airborne = float64(r.airborne) / float64(s.Ticks)
	}
	return s
}

// WriteSummary saves the summary as summary.yaml. It is a no-op without an
// output directory.
func (r *Recorder) WriteSummary() error {
	if r.dir == "" {
		return nil
	}
	s := r.Summary()
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, "summary.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing summary.yaml: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	return r.dir
}

// Close flushes and closes the trace file.
func (r *Recorder) Close() error {
	if r.traceFile == nil {
		return nil
	}
	err := r.traceFile.Close()
	r.traceFile = nil
	return err
}
