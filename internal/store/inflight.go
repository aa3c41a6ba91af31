// internal/store/inflight.go
package store

import (
	"sync"
	"time"
)

// DefaultCooldown bounds how long an abandoned in-flight entry can block a
// key before it is considered stale and reclaimed.
const DefaultCooldown = 300 * time.Millisecond

// inflight is a per-key registry of pending mutations. A second mutation for
// the same logical key while one is still settling is rejected (the caller
// turns that into a silent no-op). Entries are released on completion; the
// cooldown is only a safety net so a crash mid-mutation cannot wedge a key
// forever.
type inflight struct {
	mu       sync.Mutex
	pending  map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func newInflight(cooldown time.Duration) *inflight {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &inflight{
		pending:  make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// tryAcquire marks key as pending. It fails while a previous acquisition is
// still live and younger than the cooldown.
func (g *inflight) tryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if started, ok := g.pending[key]; ok && g.now().Sub(started) < g.cooldown {
		return false
	}
	g.pending[key] = g.now()
	return true
}

func (g *inflight) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, key)
}
