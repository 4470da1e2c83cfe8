package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/winter-sled/internal/game/sled"
)

func TestBindingsState(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		name string
		held []sdl.Scancode
		want sled.InputState
	}{
		{"none", nil, sled.InputState{}},
		{"w", []sdl.Scancode{sdl.SCANCODE_W}, sled.InputState{Forward: true}},
		{"arrow up", []sdl.Scancode{sdl.SCANCODE_UP}, sled.InputState{Forward: true}},
		{"s and down", []sdl.Scancode{sdl.SCANCODE_S, sdl.SCANCODE_DOWN}, sled.InputState{Backward: true}},
		{"turns", []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_RIGHT}, sled.InputState{Left: true, Right: true}},
		{"brake boost", []sdl.Scancode{sdl.SCANCODE_SPACE, sdl.SCANCODE_RSHIFT}, sled.InputState{Brake: true, Boost: true}},
		{"unbound", []sdl.Scancode{sdl.SCANCODE_Q}, sled.InputState{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := make([]uint8, sdl.NUM_SCANCODES)
			for _, k := range tt.held {
				keys[k] = 1
			}
			if got := b.State(keys); got != tt.want {
				t.Errorf("State = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBindingsShortKeyboardState(t *testing.T) {
	if got := DefaultBindings().State(make([]uint8, 4)); !got.Idle() {
		t.Errorf("expected idle, got %+v", got)
	}
}
