package platform

import (
	"fmt"

	"github.com/vovakirdan/jage/internal/input"
)

// Event is a discrete window event.
type Event interface {
	isEvent()
}

// Closed is sent when the user asks to close the window.
type Closed struct{}

// Resized carries the new physical window size.
type Resized struct {
	Width  int
	Height int
}

// KeyPressed is sent when a key goes down.
type KeyPressed struct {
	Code input.Key
	Alt  bool
}

// KeyReleased is sent when a key goes up.
type KeyReleased struct {
	Code input.Key
}

func (Closed) isEvent()      {}
func (Resized) isEvent()     {}
func (KeyPressed) isEvent()  {}
func (KeyReleased) isEvent() {}

func (Closed) String() string {
	return "Closed"
}

func (e Resized) String() string {
	return fmt.Sprintf("Resized(%dx%d)", e.Width, e.Height)
}

func (e KeyPressed) String() string {
	if e.Alt {
		return fmt.Sprintf("KeyPressed(Alt+%s)", e.Code)
	}
	return fmt.Sprintf("KeyPressed(%s)", e.Code)
}

func (e KeyReleased) String() string {
	return fmt.Sprintf("KeyReleased(%s)", e.Code)
}

// EventQueue is a bounded, non-blocking event buffer shared by backends.
// Producers drop events when the queue is full rather than stall the
// backend's own loop.
type EventQueue struct {
	ch chan Event
}

// NewEventQueue creates a queue holding up to size events.
func NewEventQueue(size int) *EventQueue {
	return &EventQueue{ch: make(chan Event, size)}
}

// Push enqueues ev and reports whether it fit.
func (q *EventQueue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Poll dequeues the next event without blocking.
func (q *EventQueue) Poll() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return nil, false
	}
}
