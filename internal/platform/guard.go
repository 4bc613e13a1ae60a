package platform

import "sync/atomic"

// ContextGuard enforces the single active rendering context: at most one
// holder may have it active at a time.
type ContextGuard struct {
	active atomic.Bool
}

// SetActive claims or releases the context. Claiming an already active
// context fails; releasing always succeeds.
func (g *ContextGuard) SetActive(active bool) bool {
	if !active {
		g.active.Store(false)
		return true
	}
	return g.active.CompareAndSwap(false, true)
}

// Active reports whether the context is currently claimed.
func (g *ContextGuard) Active() bool {
	return g.active.Load()
}
