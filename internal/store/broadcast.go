// internal/store/broadcast.go
package store

import "sync"

// Hub fans a named broadcast signal out to subscribers. A store publishes on
// its own persistence key after every successful mutation so that other
// instances holding the same key re-read from storage and converge.
// Notification is asynchronous: publishing never runs subscriber callbacks on
// the mutating goroutine.
type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]func()
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]func())}
}

// Subscribe registers fn for signals on key. It returns the subscription id,
// used by Publish to skip the caller's own callback, and an unsubscribe func.
func (h *Hub) Subscribe(key string, fn func()) (id int, unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]func())
	}
	id = h.next
	h.next++
	h.subs[key][id] = fn

	return id, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[key], id)
	}
}

// Publish signals every subscriber of key except skipID. A mutating store
// passes its own subscription id so it does not re-read the state it just
// wrote; pass a negative skipID to notify everyone.
func (h *Hub) Publish(key string, skipID int) {
	h.mu.RLock()
	fns := make([]func(), 0, len(h.subs[key]))
	for id, fn := range h.subs[key] {
		if id == skipID {
			continue
		}
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	go func() {
		for _, fn := range fns {
			fn()
		}
	}()
}
