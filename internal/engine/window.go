package engine

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/input"
	"github.com/vovakirdan/jage/internal/platform"
)

// createWindow (re)creates the window and fits the viewport to its size.
func (e *Engine) createWindow(fullscreen bool) error {
	cfg := e.cfg
	cfg.Fullscreen = fullscreen

	e.windowMu.Lock()
	err := e.window.Create(cfg)
	if err == nil {
		// The render goroutine claims the context per frame
		e.window.SetActive(false)
		e.winState.Fullscreen = fullscreen
		e.winState.VSync = cfg.VSync
	}
	e.windowMu.Unlock()

	if err != nil {
		if !errors.Is(err, platform.ErrCreateWindow) {
			err = fmt.Errorf("%w: %w", platform.ErrCreateWindow, err)
		}
		e.logger.Error("failed to create window", "error", err)
		return fmt.Errorf("engine: %w", err)
	}

	w, h := e.window.Size()
	e.logger.Info("window created", "width", w, "height", h, "fullscreen", fullscreen, "vsync", cfg.VSync)
	e.handleResize(w, h)
	return nil
}

// handleResize records the new size and refits the viewport. It takes the
// window lock only, so it may run during a simulation step but never during
// a present. Zero-area sizes are ignored.
func (e *Engine) handleResize(width, height int) {
	vp, err := core.FitAspect(width, height)
	if err != nil {
		e.logger.Debug("ignoring resize", "width", width, "height", height)
		return
	}

	e.windowMu.Lock()
	e.winState.Width = width
	e.winState.Height = height
	e.viewport = vp
	e.window.SetView(vp)
	e.windowMu.Unlock()

	e.logger.Info("window resized", "width", width, "height", height, "viewport", vp.Kind())
	e.logger.Debug("viewport", "rect", vp.String())
}

// pollEvents drains every pending window event.
func (e *Engine) pollEvents() {
	for e.running.Load() {
		ev, ok := e.window.PollEvent()
		if !ok {
			return
		}
		e.handleEvent(ev)
	}
}

func (e *Engine) handleEvent(ev platform.Event) {
	switch ev := ev.(type) {
	case platform.Closed:
		e.logger.Info("window closed")
		e.requestStop()

	case platform.Resized:
		e.handleResize(ev.Width, ev.Height)

	case platform.KeyPressed:
		switch {
		case ev.Code == input.KeyEscape:
			e.logger.Info("escape pressed, stopping")
			e.requestStop()
		case ev.Code == input.KeyEnter && ev.Alt:
			e.toggleFullscreen()
		}
	}
}

// toggleFullscreen recreates the window with the fullscreen flag flipped.
// Failing to recreate the window is fatal.
func (e *Engine) toggleFullscreen() {
	fullscreen := !e.WindowState().Fullscreen
	e.logger.Info("toggling fullscreen", "fullscreen", fullscreen)

	if err := e.createWindow(fullscreen); err != nil {
		e.fatal = err
		e.requestStop()
	}
}
