package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/input"
	"github.com/vovakirdan/jage/internal/platform"
)

// DefaultHold is how long a key counts as held after its last press.
// Terminals report presses and auto-repeats but never releases.
const DefaultHold = 300 * time.Millisecond

// Default cell grid used until a program reports its size.
const (
	defaultCols = 80
	defaultRows = 24
)

// Window is the terminal window shared by the terminal and SSH backends.
// A Bubble Tea program is attached while someone is watching; frames
// displayed with no program attached are dropped.
type Window struct {
	platform.ContextGuard

	logger *log.Logger
	keys   KeyMap
	events *platform.EventQueue
	hold   time.Duration
	now    func() time.Time

	mu         sync.Mutex
	program    *tea.Program
	frames     *frameRenderer
	cols       int
	rows       int
	view       core.ViewportRect
	clearColor core.RGBA
	canvas     *core.Canvas
	open       bool
	fullscreen bool
	title      string
	held       map[input.Key]time.Time
}

func newWindow(logger *log.Logger) *Window {
	return &Window{
		logger: logger,
		keys:   DefaultKeyMap(),
		events: platform.NewEventQueue(256),
		hold:   DefaultHold,
		now:    time.Now,
		cols:   defaultCols,
		rows:   defaultRows,
		view:   core.IdentityViewport(),
		held:   make(map[input.Key]time.Time),
	}
}

// markOpen marks the window as created.
func (w *Window) markOpen(cfg platform.WindowConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = true
	w.title = cfg.Title
	w.fullscreen = cfg.Fullscreen
}

// Title returns the title the window was created with.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.title
}

// attach connects a running program of the given size.
func (w *Window) attach(p *tea.Program, r *lipgloss.Renderer, cols, rows int) {
	w.mu.Lock()
	w.program = p
	w.frames = newFrameRenderer(r)
	if cols > 0 && rows > 0 {
		w.cols, w.rows = cols, rows
	}
	cols, rows = w.cols, w.rows
	w.mu.Unlock()

	w.events.Push(platform.Resized{Width: cols, Height: rows * 2})
}

// detach disconnects p and reports whether it was the attached program.
func (w *Window) detach(p *tea.Program) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.program != p || p == nil {
		return false
	}
	w.program = nil
	w.frames = nil
	clear(w.held)
	return true
}

// attachedProgram returns the program currently showing the window.
func (w *Window) attachedProgram() *tea.Program {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.program
}

// setFullscreen switches the attached program's alternate screen.
func (w *Window) setFullscreen(fullscreen bool) {
	w.mu.Lock()
	changed := w.fullscreen != fullscreen
	w.fullscreen = fullscreen
	p := w.program
	w.mu.Unlock()

	if !changed || p == nil {
		return
	}
	if fullscreen {
		p.EnterAltScreen()
	} else {
		p.ExitAltScreen()
	}
}

func (w *Window) resize(cols, rows int) {
	w.mu.Lock()
	w.cols, w.rows = cols, rows
	w.mu.Unlock()

	w.events.Push(platform.Resized{Width: cols, Height: rows * 2})
}

// keyDown records a press. Repeats of a held key only refresh its hold.
func (w *Window) keyDown(code input.Key, alt bool) {
	w.mu.Lock()
	_, held := w.held[code]
	w.held[code] = w.now()
	w.mu.Unlock()

	if !held || alt {
		w.events.Push(platform.KeyPressed{Code: code, Alt: alt})
	}
}

// expireKeys releases keys not pressed within the hold window.
func (w *Window) expireKeys() {
	now := w.now()

	w.mu.Lock()
	var released []input.Key
	for k, at := range w.held {
		if now.Sub(at) >= w.hold {
			delete(w.held, k)
			released = append(released, k)
		}
	}
	w.mu.Unlock()

	for _, k := range released {
		w.events.Push(platform.KeyReleased{Code: k})
	}
}

// Snapshot returns the keys currently held. Terminals have no joystick.
func (w *Window) Snapshot() input.State {
	now := w.now()
	st := input.NewState()

	w.mu.Lock()
	defer w.mu.Unlock()

	for k, at := range w.held {
		if now.Sub(at) < w.hold {
			st.Press(k)
		}
	}
	return st
}

// PollEvent returns the next pending event.
func (w *Window) PollEvent() (platform.Event, bool) {
	return w.events.Poll()
}

// SetView sets the viewport used for the next frames.
func (w *Window) SetView(vp core.ViewportRect) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.view = vp
}

// Clear sets the colour of the letterbox bars.
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

// Display renders the canvas and sends the frame to the attached program.
func (w *Window) Display() {
	w.mu.Lock()
	p := w.program
	if p == nil || w.frames == nil || !w.open {
		w.mu.Unlock()
		return
	}
	frame := w.frames.render(w.canvas, w.view, w.cols, w.rows, w.clearColor)
	w.mu.Unlock()

	// Send blocks until the program takes the message, and the program's
	// Update takes w.mu, so it must run unlocked.
	p.Send(frameMsg(frame))
}

// Size returns the physical size in pixels: one column by two rows per cell.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.cols, w.rows * 2
}

// IsOpen reports whether the window has been created and not closed.
func (w *Window) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.open
}

// markClosed marks the window closed and returns the program to stop.
func (w *Window) markClosed() *tea.Program {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = false
	p := w.program
	w.program = nil
	w.frames = nil
	return p
}
