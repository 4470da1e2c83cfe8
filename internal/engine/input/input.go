// Package input turns SDL2 events and keyboard state into sled controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/winter-sled/internal/game/sled"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DeltaX int
	DeltaY int
}

// Bindings maps each control to the scancodes that hold it.
type Bindings struct {
	Forward  []sdl.Scancode
	Backward []sdl.Scancode
	Left     []sdl.Scancode
	Right    []sdl.Scancode
	Brake    []sdl.Scancode
	Boost    []sdl.Scancode
}

// DefaultBindings returns WASD plus arrows, Space to brake and Shift to boost.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_UP},
		Backward: []sdl.Scancode{sdl.SCANCODE_S, sdl.SCANCODE_DOWN},
		Left:     []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_LEFT},
		Right:    []sdl.Scancode{sdl.SCANCODE_D, sdl.SCANCODE_RIGHT},
		Brake:    []sdl.Scancode{sdl.SCANCODE_SPACE},
		Boost:    []sdl.Scancode{sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT},
	}
}

// State resolves the held controls from a keyboard state array indexed by
// scancode, as returned by sdl.GetKeyboardState.
func (b Bindings) State(keys []uint8) sled.InputState {
	return sled.InputState{
		Forward:  anyHeld(keys, b.Forward),
		Backward: anyHeld(keys, b.Backward),
		Left:     anyHeld(keys, b.Left),
		Right:    anyHeld(keys, b.Right),
		Brake:    anyHeld(keys, b.Brake),
		Boost:    anyHeld(keys, b.Boost),
	}
}

func anyHeld(keys []uint8, codes []sdl.Scancode) bool {
	for _, c := range codes {
		if int(c) < len(keys) && keys[c] != 0 {
			return true
		}
	}
	return false
}

// Input handles all input processing.
type Input struct {
	events      []Event
	bindings    Bindings
	sensitivity float64
	pitchDelta  float64
}

// New creates a new input handler. sensitivity converts mouse pixels to
// radians of pitch.
func New(sensitivity float64) *Input {
	return &Input{
		events:      make([]Event, 0, 16),
		bindings:    DefaultBindings(),
		sensitivity: sensitivity,
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events
	i.pitchDelta = 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})
			// Moving the mouse up looks up.
			i.pitchDelta -= float64(e.YRel) * i.sensitivity
		}
	}

	return false
}

// Snapshot returns the controls held right now.
func (i *Input) Snapshot() sled.InputState {
	return i.bindings.State(sdl.GetKeyboardState())
}

// PitchDelta returns the pitch change gathered during the last Update.
func (i *Input) PitchDelta() float64 {
	return i.pitchDelta
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
