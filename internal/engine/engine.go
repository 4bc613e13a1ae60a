// Package engine runs the simulate and render loops over a shared scene.
//
// The simulation runs on the goroutine that calls Run and also drains window
// events. Rendering runs on its own goroutine. The two share the scene under
// the scene lock and the window under the window lock; nothing else is
// shared between them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/input"
	"github.com/vovakirdan/jage/internal/platform"
	"github.com/vovakirdan/jage/internal/scene"
	"github.com/vovakirdan/jage/internal/sprite"
)

// ErrAlreadyStarted is returned by Start on an engine that is not stopped.
var ErrAlreadyStarted = errors.New("engine: already started")

// State is the coarse lifecycle state of an Engine.
type State int32

const (
	Stopped State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Options configures an Engine.
type Options struct {
	Window platform.Window
	Input  input.Source // nil reads no input
	Scene  *scene.Scene
	Player *sprite.Sprite // steered by input; may be nil

	Config   platform.WindowConfig
	DeadZone float64
	KeySpeed float64
	UpdateHz int // simulation rate, default 60
	RenderHz int // render rate, default 60

	Logger *log.Logger
}

// WindowState is the window as last created or resized.
type WindowState struct {
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Stats summarizes the loop timings of a run.
type Stats struct {
	Started   time.Time
	Stopped   time.Time
	Updates   int64
	AvgUpdate time.Duration
	Frames    int64
	AvgFrame  time.Duration
}

// Engine coordinates the simulate and render loops. Construct one with New;
// an Engine runs at most once at a time.
type Engine struct {
	window platform.Window
	input  input.Source
	scene  *scene.Scene
	player *sprite.Sprite
	canvas *core.Canvas
	cfg    platform.WindowConfig
	logger *log.Logger

	deadZone     float64
	keySpeed     float64
	updatePeriod time.Duration
	renderPeriod time.Duration

	state   atomic.Int32
	running atomic.Bool

	// windowMu guards the window, winState and viewport.
	windowMu sync.Mutex
	winState WindowState
	viewport core.ViewportRect

	renderDone chan struct{}
	stopOnce   sync.Once
	fatal      error // set by the simulate goroutine only

	lastUpdate time.Time

	statsMu sync.Mutex
	updates timing
	frames  timing
	started time.Time
	stopped time.Time
}

// New validates opts and builds a stopped Engine.
func New(opts Options) (*Engine, error) {
	if opts.Window == nil {
		return nil, errors.New("engine: window is required")
	}
	if opts.Scene == nil {
		return nil, errors.New("engine: scene is required")
	}

	cfg := opts.Config
	if cfg.RenderWidth <= 0 || cfg.RenderHeight <= 0 {
		cfg.RenderWidth, cfg.RenderHeight = 1280, 720
	}
	if opts.UpdateHz <= 0 {
		opts.UpdateHz = 60
	}
	if opts.RenderHz <= 0 {
		opts.RenderHz = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Engine{
		window:       opts.Window,
		input:        opts.Input,
		scene:        opts.Scene,
		player:       opts.Player,
		canvas:       core.NewCanvas(cfg.RenderWidth, cfg.RenderHeight),
		cfg:          cfg,
		logger:       opts.Logger,
		deadZone:     opts.DeadZone,
		keySpeed:     opts.KeySpeed,
		updatePeriod: time.Second / time.Duration(opts.UpdateHz),
		renderPeriod: time.Second / time.Duration(opts.RenderHz),
		viewport:     core.IdentityViewport(),
		updates:      timing{name: "update"},
		frames:       timing{name: "frame"},
	}, nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Start creates the window and launches the render goroutine. A window
// creation failure leaves the engine stopped and wraps platform.ErrCreateWindow.
func (e *Engine) Start() error {
	if !e.state.CompareAndSwap(int32(Stopped), int32(Running)) {
		return ErrAlreadyStarted
	}

	if err := e.createWindow(e.cfg.Fullscreen); err != nil {
		e.state.Store(int32(Stopped))
		return err
	}

	e.stopOnce = sync.Once{}
	e.fatal = nil
	e.renderDone = make(chan struct{})
	e.lastUpdate = time.Now()

	e.statsMu.Lock()
	e.started = e.lastUpdate
	e.statsMu.Unlock()

	e.running.Store(true)
	go e.renderLoop()

	e.logger.Info("engine started",
		"updateHz", int(time.Second/e.updatePeriod),
		"renderHz", int(time.Second/e.renderPeriod),
		"render", fmt.Sprintf("%dx%d", e.cfg.RenderWidth, e.cfg.RenderHeight),
	)
	return nil
}

// Run starts the engine and runs the simulation loop on the calling
// goroutine until the window closes, Escape is pressed or ctx is done.
// The engine is stopped when Run returns. The error is non-nil only for
// window creation failures.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Start(); err != nil {
		return err
	}
	defer e.Stop()

	for e.running.Load() {
		start := time.Now()

		if ctx.Err() != nil {
			e.logger.Info("context done, stopping")
			e.requestStop()
			break
		}

		e.pollEvents()
		if !e.running.Load() {
			break
		}

		e.simulate(start)

		spent := time.Since(start)
		e.recordUpdate(spent)
		sleepCtx(ctx, e.updatePeriod-spent)
	}

	return e.fatal
}

// requestStop clears the running flag; the loops notice it at the top of
// their next iteration.
func (e *Engine) requestStop() {
	e.running.Store(false)
	e.state.CompareAndSwap(int32(Running), int32(Stopping))
}

// Stop clears the running flag, waits for the render goroutine to return and
// only then closes the window. It is safe to call more than once.
func (e *Engine) Stop() {
	if e.State() == Stopped {
		return
	}

	e.stopOnce.Do(func() {
		e.requestStop()
		if e.renderDone != nil {
			<-e.renderDone
		}

		e.windowMu.Lock()
		err := e.window.Close()
		e.windowMu.Unlock()
		if err != nil {
			e.logger.Warn("failed to close window", "error", err)
		}

		e.statsMu.Lock()
		e.stopped = time.Now()
		e.statsMu.Unlock()

		e.state.Store(int32(Stopped))

		st := e.Stats()
		e.logger.Info("engine stopped",
			"updates", st.Updates,
			"avgUpdate", st.AvgUpdate,
			"frames", st.Frames,
			"avgFrame", st.AvgFrame,
		)
	})
}

// Stats returns the timing counters so far.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()

	return Stats{
		Started:   e.started,
		Stopped:   e.stopped,
		Updates:   e.updates.count,
		AvgUpdate: e.updates.average(),
		Frames:    e.frames.count,
		AvgFrame:  e.frames.average(),
	}
}

// Viewport returns the viewport the canvas is currently presented into.
func (e *Engine) Viewport() core.ViewportRect {
	e.windowMu.Lock()
	defer e.windowMu.Unlock()

	return e.viewport
}

// WindowState returns the current window size and flags.
func (e *Engine) WindowState() WindowState {
	e.windowMu.Lock()
	defer e.windowMu.Unlock()

	return e.winState
}

// sleepCtx sleeps for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
