package engine

import (
	"sync"
	"time"

	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/platform"
)

// fakeWindow records every call in order and counts any drawing that
// happens after Close.
type fakeWindow struct {
	platform.ContextGuard
	events *platform.EventQueue

	mu         sync.Mutex
	calls      []string
	creates    []platform.WindowConfig
	view       core.ViewportRect
	width      int
	height     int
	open       bool
	closed     bool
	afterClose int
	displays   int
	createErr  error
	presentLag time.Duration // held inside Display, with the window lock taken
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{events: platform.NewEventQueue(64)}
}

func (f *fakeWindow) record(call string) {
	f.calls = append(f.calls, call)
	if f.closed && call != "close" {
		f.afterClose++
	}
}

func (f *fakeWindow) Create(cfg platform.WindowConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("create")
	if f.createErr != nil {
		return f.createErr
	}
	f.creates = append(f.creates, cfg)
	f.open = true
	f.closed = false
	if cfg.Fullscreen {
		f.width, f.height = 1920, 1080
	} else {
		f.width, f.height = cfg.Width, cfg.Height
	}
	return nil
}

func (f *fakeWindow) PollEvent() (platform.Event, bool) {
	return f.events.Poll()
}

func (f *fakeWindow) SetView(vp core.ViewportRect) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("view")
	f.view = vp
}

func (f *fakeWindow) Clear(core.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("clear")
}

func (f *fakeWindow) Draw(*core.Canvas) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("draw")
}

func (f *fakeWindow) Display() {
	f.mu.Lock()
	lag := f.presentLag
	f.record("display")
	f.displays++
	f.mu.Unlock()

	if lag > 0 {
		time.Sleep(lag)
	}
}

func (f *fakeWindow) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.width, f.height
}

func (f *fakeWindow) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.open
}

func (f *fakeWindow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("close")
	f.open = false
	f.closed = true
	return nil
}

func (f *fakeWindow) snapshot() (calls []string, afterClose, displays int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...), f.afterClose, f.displays
}

func (f *fakeWindow) currentView() core.ViewportRect {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.view
}
