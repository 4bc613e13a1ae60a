package engine

import (
	"time"

	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/input"
	"github.com/vovakirdan/jage/internal/sprite"
)

// timingLogEvery is how many samples pass between average-time log lines.
const timingLogEvery = 60

// timing is a rolling average: total time over sample count.
type timing struct {
	name  string
	total time.Duration
	count int64
}

// add records one sample and reports whether a log line is due.
func (t *timing) add(d time.Duration) bool {
	t.total += d
	t.count++
	return t.count%timingLogEvery == 0
}

func (t *timing) average() time.Duration {
	if t.count == 0 {
		return 0
	}
	return t.total / time.Duration(t.count)
}

func (e *Engine) recordUpdate(d time.Duration) {
	e.record(&e.updates, d)
}

func (e *Engine) recordFrame(d time.Duration) {
	e.record(&e.frames, d)
}

func (e *Engine) record(t *timing, d time.Duration) {
	e.statsMu.Lock()
	due := t.add(d)
	avg := t.average()
	e.statsMu.Unlock()

	if due {
		e.logger.Debug("average "+t.name+" time", "ms", float64(avg)/float64(time.Millisecond))
	}
}

// simulate advances the scene by the time since the previous step.
func (e *Engine) simulate(now time.Time) {
	elapsed := now.Sub(e.lastUpdate)
	e.lastUpdate = now
	e.step(float64(elapsed) / float64(time.Millisecond))
}

// step reads input once and applies one simulation step to every sprite
// under a single scene lock acquisition.
func (e *Engine) step(elapsedMillis float64) {
	state := input.NewState()
	if e.input != nil {
		state = e.input.Snapshot()
	}
	dir := input.Direction(state, e.deadZone, e.keySpeed)
	bounds := e.canvas.Bounds()

	e.scene.WithLock(func(sprites []*sprite.Sprite) {
		if e.player != nil {
			e.player.SetVelocityDir(dir)
		}
		for _, s := range sprites {
			s.Update(elapsedMillis, bounds)
		}
	})
}

// renderLoop draws frames until the running flag clears.
func (e *Engine) renderLoop() {
	defer close(e.renderDone)

	for e.running.Load() {
		start := time.Now()

		e.renderFrame()

		spent := time.Since(start)
		e.recordFrame(spent)
		if rest := e.renderPeriod - spent; rest > 0 {
			time.Sleep(rest)
		}
	}
}

// renderFrame draws the scene into the canvas under the scene lock, then
// presents the canvas under the window lock.
func (e *Engine) renderFrame() {
	e.canvas.Clear(core.Black)
	e.scene.WithLock(func(sprites []*sprite.Sprite) {
		for _, s := range sprites {
			s.Draw(e.canvas)
		}
	})

	e.windowMu.Lock()
	defer e.windowMu.Unlock()

	if !e.window.IsOpen() {
		return
	}
	if !e.window.SetActive(true) {
		e.logger.Warn("failed to activate window")
		return
	}
	e.window.Clear(core.Gray)
	e.window.Draw(e.canvas)
	e.window.Display()
	e.window.SetActive(false)
}
