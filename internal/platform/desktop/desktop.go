// Package desktop implements the "desktop" window backend on Ebitengine.
//
// Ebitengine's game loop must own the main goroutine, so the backend
// implements platform.Hoster: the engine runs on its own goroutine and
// talks to the window through this package, which hands frames, events
// and input across under a mutex.
package desktop

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/input"
	"github.com/vovakirdan/jage/internal/platform"
)

func init() {
	platform.Register("desktop", "Desktop window with keyboard and gamepad", New)
}

// Window is a desktop window.
type Window struct {
	platform.ContextGuard

	logger  *log.Logger
	events  *platform.EventQueue
	created chan struct{}
	once    sync.Once

	mu         sync.Mutex
	open       bool
	terminated bool // tells the Ebitengine loop to exit
	closing    bool // a close request was already reported
	width      int
	height     int
	view       core.ViewportRect
	clearColor core.RGBA
	canvas     *core.Canvas
	pixels     []byte // last displayed frame, RGBA
	frameW     int
	frameH     int
	input      input.State
}

// New creates a desktop backend. The window appears once Host runs.
func New(opts platform.Options) (platform.Backend, error) {
	return &Window{
		logger:     opts.Logger,
		events:     platform.NewEventQueue(256),
		created:    make(chan struct{}),
		view:       core.IdentityViewport(),
		clearColor: core.Gray,
		input:      input.NewState(),
	}, nil
}

// Create applies the window settings. Calling it again recreates the
// window with the new flags, which for Ebitengine means changing them in
// place.
func (w *Window) Create(cfg platform.WindowConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", platform.ErrCreateWindow, cfg.Width, cfg.Height)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetFullscreen(cfg.Fullscreen)

	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		// Ebitengine fullscreen always uses the desktop mode
		if !cfg.UseDesktopSize {
			w.logger.Debug("fullscreen uses the desktop resolution", "requested", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
		}
		if m := ebiten.Monitor(); m != nil {
			if mw, mh := m.Size(); mw > 0 && mh > 0 {
				width, height = mw, mh
			}
		}
	}

	w.mu.Lock()
	w.open = true
	w.terminated = false
	w.closing = false
	w.width, w.height = width, height
	w.mu.Unlock()

	w.once.Do(func() { close(w.created) })
	return nil
}

// Host runs the engine on a new goroutine and the Ebitengine loop on the
// calling one. Ebitengine starts only once the engine has created the
// window; if the engine returns first, its error is returned directly.
func (w *Window) Host(run func() error) error {
	errc := make(chan error, 1)
	go func() {
		err := run()
		w.terminate()
		errc <- err
	}()

	select {
	case <-w.created:
	case err := <-errc:
		return err
	}

	gameErr := ebiten.RunGame(&game{w: w})
	if gameErr != nil && !errors.Is(gameErr, ebiten.Termination) {
		// The loop is gone: make the engine stop and report a fatal window error
		w.logger.Error("desktop window failed", "error", gameErr)
		w.events.Push(platform.Closed{})
		runErr := <-errc
		return errors.Join(fmt.Errorf("%w: %w", platform.ErrCreateWindow, gameErr), runErr)
	}

	return <-errc
}

// terminate makes the Ebitengine loop exit at its next update.
func (w *Window) terminate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = false
	w.terminated = true
}

// PollEvent returns the next pending event.
func (w *Window) PollEvent() (platform.Event, bool) {
	return w.events.Poll()
}

// SetView sets the viewport the frame is drawn into.
func (w *Window) SetView(vp core.ViewportRect) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.view = vp
}

// Clear sets the colour painted around the viewport.
func (w *Window) Clear(col core.RGBA) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.clearColor = col
}

// Draw sets the canvas presented by the next Display.
func (w *Window) Draw(c *core.Canvas) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.canvas = c
}

// Display copies the drawn canvas into the frame Ebitengine shows.
func (w *Window) Display() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.canvas == nil || !w.open {
		return
	}
	n := w.canvas.Width() * w.canvas.Height() * 4
	if len(w.pixels) != n {
		w.pixels = make([]byte, n)
	}
	w.canvas.CopyPixels(w.pixels)
	w.frameW, w.frameH = w.canvas.Width(), w.canvas.Height()
}

// Size returns the window size reported by the last layout.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.width, w.height
}

// IsOpen reports whether the window is shown.
func (w *Window) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.open
}

// Close ends the Ebitengine loop.
func (w *Window) Close() error {
	w.terminate()
	return nil
}

// Snapshot returns the input state read at the last Ebitengine update.
func (w *Window) Snapshot() input.State {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.input.Clone()
}

// layout records the outside size and reports changes as Resized.
func (w *Window) layout(width, height int) {
	w.mu.Lock()
	changed := width != w.width || height != w.height
	w.width, w.height = width, height
	w.mu.Unlock()

	if changed {
		w.events.Push(platform.Resized{Width: width, Height: height})
	}
}

// requestClose reports the first close request of the current window.
func (w *Window) requestClose() {
	w.mu.Lock()
	first := !w.closing
	w.closing = true
	w.mu.Unlock()

	if first {
		w.events.Push(platform.Closed{})
	}
}

func (w *Window) setInput(st input.State) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.input = st
}

func (w *Window) isTerminated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.terminated
}
