package sled

// InputState is the set of held controls for one tick.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Brake    bool
	Boost    bool
}

// Steer returns -1 for left, +1 for right and 0 when neither or both are held.
func (in InputState) Steer() float64 {
	var s float64
	if in.Left {
		s--
	}
	if in.Right {
		s++
	}
	return s
}

// Throttle returns +1 for forward, -1 for backward and 0 when neither or both are held.
func (in InputState) Throttle() float64 {
	var t float64
	if in.Forward {
		t++
	}
	if in.Backward {
		t--
	}
	return t
}

// Idle reports whether no control is held.
func (in InputState) Idle() bool {
	return in == InputState{}
}
