package sim

import "sync"

// SharedWorld is the process-wide handle to the world: one World behind
// one exclusive mutex. Every goroutine that touches the world — the
// tick loop, each connection's sender and each receiver — acquires the
// lock, mutates or copies, and releases before doing any socket I/O.
// There is no reader/writer distinction; all access is exclusive.
type SharedWorld struct {
	mu    sync.Mutex
	world *World
}

// NewSharedWorld wraps a freshly created world.
func NewSharedWorld(w *World) *SharedWorld {
	return &SharedWorld{world: w}
}

// Lock acquires the world lock and returns the world. The caller must
// call Unlock when done and must not retain the pointer past it.
func (s *SharedWorld) Lock() *World {
	s.mu.Lock()
	return s.world
}

// Unlock releases the world lock.
func (s *SharedWorld) Unlock() {
	s.mu.Unlock()
}
