// Package input defines the input snapshot consumed by the simulation and
// the dead-zone and direction math applied to it. Window backends provide
// the actual device polling through the Source interface.
package input

import (
	"math"

	"github.com/vovakirdan/jage/internal/core"
)

// Key identifies a keyboard key the engine reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	default:
		return "Unknown"
	}
}

// Default tuning, matching the stock config.
const (
	DefaultDeadZone = 15.0
	DefaultKeySpeed = 75.0
)

// State is a snapshot of the input devices for one simulation cycle.
// Axis values use the joystick range [-100, 100].
type State struct {
	Keys  map[Key]bool
	AxisX float64
	AxisY float64
}

// NewState creates an empty snapshot.
func NewState() State {
	return State{Keys: make(map[Key]bool)}
}

// Pressed returns true if the key is held in this snapshot.
func (s State) Pressed(k Key) bool {
	if s.Keys == nil {
		return false
	}
	return s.Keys[k]
}

// Press marks a key as held.
func (s *State) Press(k Key) {
	if s.Keys == nil {
		s.Keys = make(map[Key]bool)
	}
	s.Keys[k] = true
}

// Clone creates a copy of this snapshot.
func (s State) Clone() State {
	clone := NewState()
	for k, v := range s.Keys {
		clone.Keys[k] = v
	}
	clone.AxisX = s.AxisX
	clone.AxisY = s.AxisY
	return clone
}

// Source is polled once per simulation cycle for the current device state.
type Source interface {
	Snapshot() State
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() State

// Snapshot calls f.
func (f SourceFunc) Snapshot() State {
	return f()
}

// ApplyDeadZone zeroes an axis reading whose magnitude is below threshold.
// Readings at or above the threshold pass through unchanged.
func ApplyDeadZone(v, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// Direction combines the dead-zoned joystick axes with the arrow keys.
// Keys are applied after the joystick and add to it, so a held key and a
// deflected stick on the same axis sum rather than one overriding the other.
func Direction(s State, deadZone, keySpeed float64) core.Vec2 {
	x := ApplyDeadZone(s.AxisX, deadZone)
	y := ApplyDeadZone(s.AxisY, deadZone)

	if s.Pressed(KeyUp) {
		y += -keySpeed
	}
	if s.Pressed(KeyRight) {
		x += keySpeed
	}
	if s.Pressed(KeyDown) {
		y += keySpeed
	}
	if s.Pressed(KeyLeft) {
		x += -keySpeed
	}

	return core.V(x, y)
}
