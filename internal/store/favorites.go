// internal/store/favorites.go
package store

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FavoritesStore owns the set of favorited product ids for one persistence
// key. It follows the same contract as CartStore: synchronous in-memory
// update, full-collection persist, asynchronous broadcast, and a per-product
// in-flight guard against duplicate rapid toggles.
type FavoritesStore struct {
	key     string
	storage Storage
	hub     *Hub
	log     logrus.FieldLogger
	guard   *inflight

	mu    sync.RWMutex
	state State
	ids   []int

	// persistMu serializes snapshot+write, as in CartStore.
	persistMu sync.Mutex

	hubID int
	unsub func()
}

func NewFavoritesStore(key string, storage Storage, hub *Hub, log logrus.FieldLogger) *FavoritesStore {
	s := &FavoritesStore{
		key:     key,
		storage: storage,
		hub:     hub,
		log:     log,
		guard:   newInflight(DefaultCooldown),
	}
	s.state = StateLoading
	s.ids = s.readIDs()
	s.state = StateReady

	if hub != nil {
		s.hubID, s.unsub = hub.Subscribe(key, s.Reload)
	}
	return s
}

func (s *FavoritesStore) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

func (s *FavoritesStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *FavoritesStore) Subscribe(fn func()) (unsubscribe func()) {
	if s.hub == nil {
		return func() {}
	}
	_, unsub := s.hub.Subscribe(s.key, fn)
	return unsub
}

// Add marks productID as favorite. Adding an existing id is an idempotent
// no-op that still counts as success.
func (s *FavoritesStore) Add(productID int) bool {
	return s.mutate(productID, func() {
		if !s.containsLocked(productID) {
			s.ids = append(s.ids, productID)
		}
	})
}

func (s *FavoritesStore) Remove(productID int) bool {
	return s.mutate(productID, func() {
		s.removeLocked(productID)
	})
}

// Toggle flips membership and returns the resulting state. ok=false means the
// in-flight guard suppressed the call and membership is unchanged.
func (s *FavoritesStore) Toggle(productID int) (favorited, ok bool) {
	ok = s.mutate(productID, func() {
		if s.containsLocked(productID) {
			s.removeLocked(productID)
			favorited = false
		} else {
			s.ids = append(s.ids, productID)
			favorited = true
		}
	})
	if !ok {
		return s.Contains(productID), false
	}
	return favorited, true
}

func (s *FavoritesStore) Contains(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsLocked(productID)
}

func (s *FavoritesStore) Clear() bool {
	if !s.guard.tryAcquire("clear") {
		return false
	}
	defer s.guard.release("clear")

	s.persistMu.Lock()
	s.mu.Lock()
	s.ids = nil
	data := s.marshalLocked()
	s.mu.Unlock()
	s.persist(data)
	s.persistMu.Unlock()

	s.broadcast()
	return true
}

func (s *FavoritesStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the favorite set in insertion order.
func (s *FavoritesStore) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *FavoritesStore) Reload() {
	ids := s.readIDs()
	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
}

func (s *FavoritesStore) mutate(productID int, apply func()) bool {
	guardKey := strconv.Itoa(productID)
	if !s.guard.tryAcquire(guardKey) {
		return false
	}
	defer s.guard.release(guardKey)

	s.persistMu.Lock()
	s.mu.Lock()
	apply()
	data := s.marshalLocked()
	s.mu.Unlock()
	s.persist(data)
	s.persistMu.Unlock()

	s.broadcast()
	return true
}

func (s *FavoritesStore) containsLocked(productID int) bool {
	for _, id := range s.ids {
		if id == productID {
			return true
		}
	}
	return false
}

func (s *FavoritesStore) removeLocked(productID int) {
	out := s.ids[:0]
	for _, id := range s.ids {
		if id != productID {
			out = append(out, id)
		}
	}
	s.ids = out
}

func (s *FavoritesStore) marshalLocked() []byte {
	ids := s.ids
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return []byte("[]")
	}
	return data
}

func (s *FavoritesStore) persist(data []byte) {
	if err := s.storage.Write(s.key, data); err != nil && s.log != nil {
		s.log.WithError(err).WithField("key", s.key).Debug("favorites persist failed")
	}
}

func (s *FavoritesStore) broadcast() {
	if s.hub != nil {
		s.hub.Publish(s.key, s.hubID)
	}
}

func (s *FavoritesStore) readIDs() []int {
	data, ok, err := s.storage.Read(s.key)
	if err != nil || !ok {
		if err != nil && s.log != nil {
			s.log.WithError(err).WithField("key", s.key).Debug("favorites read failed")
		}
		return nil
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		if s.log != nil {
			s.log.WithError(err).WithField("key", s.key).Debug("favorites payload malformed")
		}
		return nil
	}
	return ids
}

func (s *FavoritesStore) SetGuardCooldown(d time.Duration) {
	s.guard.mu.Lock()
	s.guard.cooldown = d
	s.guard.mu.Unlock()
}
