// Package platform defines the window/present contract the engine drives and
// a registry of window backends. Backends register themselves from init()
// so the engine never imports a windowing library directly.
package platform

import (
	"errors"

	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/input"
)

// ErrCreateWindow marks a window or graphics context that could not be
// created. It is fatal for the engine.
var ErrCreateWindow = errors.New("platform: could not create window")

// WindowConfig describes the window to create.
type WindowConfig struct {
	Title          string
	Width          int
	Height         int
	Fullscreen     bool
	UseDesktopSize bool // fullscreen at the desktop resolution instead of Width x Height
	VSync          bool
	RenderWidth    int // logical size of the presented canvas
	RenderHeight   int
}

// Window is the window/present collaborator.
type Window interface {
	// Create opens the window, or recreates it with new flags if already open.
	Create(cfg WindowConfig) error

	// PollEvent returns the next pending event, if any. It never blocks.
	PollEvent() (Event, bool)

	// SetView sets the viewport the canvas is presented into.
	SetView(vp core.ViewportRect)

	// SetActive claims (true) or releases (false) the rendering context.
	// Claiming fails while another holder has it.
	SetActive(active bool) bool

	// Clear fills the whole window, letterbox bars included.
	Clear(col core.RGBA)

	// Draw presents the canvas scaled into the current viewport.
	Draw(c *core.Canvas)

	// Display shows everything drawn since the last Display.
	Display()

	// Size returns the physical window size.
	Size() (width, height int)

	// IsOpen returns false once the window is closed.
	IsOpen() bool

	// Close releases the window. The render loop must have stopped.
	Close() error
}

// Backend is a window that also provides the input devices read by the
// simulation.
type Backend interface {
	Window
	input.Source
}

// Hoster is implemented by backends whose event pump must own the calling
// goroutine (typically the process main goroutine). Host runs run alongside
// the pump and returns once both have finished.
type Hoster interface {
	Host(run func() error) error
}

// Host runs fn on the backend's terms: through Hoster when implemented,
// otherwise directly on the calling goroutine.
func Host(w Window, fn func() error) error {
	if h, ok := w.(Hoster); ok {
		return h.Host(fn)
	}
	return fn()
}
