// Package script replays recorded sled controls for headless runs.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/winter-sled/internal/game/sled"
)

// ErrInvalid is returned for scripts that cannot be replayed.
var ErrInvalid = errors.New("script: invalid")

// Step holds a set of controls for a number of ticks.
type Step struct {
	Ticks int      `yaml:"ticks"`
	Keys  []string `yaml:"keys,omitempty"`
	// Pitch is added to the camera pitch once, on the first tick of the step.
	Pitch float64 `yaml:"pitch,omitempty"`
}

// Script is a recorded input sequence for deterministic headless runs.
type Script struct {
	Name  string `yaml:"name"`
	Loop  bool   `yaml:"loop,omitempty"`
	Steps []Step `yaml:"steps"`

	states []sled.InputState
	starts []int
	total  int
}

// Frame is the input for one tick.
type Frame struct {
	State sled.InputState
	Pitch float64
}

// Load reads a YAML script from path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML script.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty", ErrInvalid)
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// New builds a script from steps.
func New(name string, steps ...Step) (*Script, error) {
	s := &Script{Name: name, Steps: steps}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) compile() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalid)
	}
	s.states = make([]sled.InputState, len(s.Steps))
	s.starts = make([]int, len(s.Steps))
	s.total = 0
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			return fmt.Errorf("%w: step %d has %d ticks", ErrInvalid, i, st.Ticks)
		}
		state, err := parseKeys(st.Keys)
		if err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrInvalid, i, err)
		}
		s.states[i] = state
		s.starts[i] = s.total
		s.total += st.Ticks
	}
	return nil
}

func parseKeys(keys []string) (sled.InputState, error) {
	var in sled.InputState
	for _, k := range keys {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "forward", "w", "up":
			in.Forward = true
		case "backward", "s", "down":
			in.Backward = true
		case "left", "a":
			in.Left = true
		case "right", "d":
			in.Right = true
		case "brake", "space":
			in.Brake = true
		case "boost", "shift":
			in.Boost = true
		default:
			return in, fmt.Errorf("unknown key %q", k)
		}
	}
	return in, nil
}

// Len returns the number of ticks in one pass of the script.
func (s *Script) Len() int { return s.total }

// At returns the input for a tick. Past the end the script repeats when
// Loop is set and is idle otherwise.
func (s *Script) At(tick int) Frame {
	if tick < 0 || s.total == 0 {
		return Frame{}
	}
	if tick >= s.total {
		if !s.Loop {
			return Frame{}
		}
		tick %= s.total
	}
	// Steps are few; a linear scan is enough.
	for i := len(s.starts) - 1; i >= 0; i-- {
		if tick >= s.starts[i] {
			f := Frame{State: s.states[i]}
			if tick == s.starts[i] {
				f.Pitch = s.Steps[i].Pitch
			}
			return f
		}
	}
	return Frame{}
}
