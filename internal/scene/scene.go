// Package scene holds the ordered sprite list shared by the simulation and
// render goroutines.
package scene

import (
	"sync"

	"github.com/vovakirdan/jage/internal/sprite"
)

// Scene is an ordered collection of sprites guarded by a single mutex.
// Readers and writers both take the same lock, so a render pass never sees
// a partially applied simulation step.
type Scene struct {
	mu      sync.Mutex
	sprites []*sprite.Sprite
}

// New creates a scene holding the given sprites in order.
func New(sprites ...*sprite.Sprite) *Scene {
	s := &Scene{}
	s.sprites = append(s.sprites, sprites...)
	return s
}

// Add appends a sprite to the end of the draw order.
func (s *Scene) Add(sp *sprite.Sprite) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sprites = append(s.sprites, sp)
}

// Len returns the number of sprites.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sprites)
}

// WithLock runs fn while holding the scene lock. The lock is released when
// fn returns or panics. fn must not retain the slice.
func (s *Scene) WithLock(fn func(sprites []*sprite.Sprite)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.sprites)
}
