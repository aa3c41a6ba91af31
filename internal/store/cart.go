// internal/store/cart.go
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/medolina/medolina-backend/internal/models"
)

// State tracks store hydration. Stores go Uninitialized -> Loading -> Ready
// exactly once, during construction; malformed or missing persisted data
// yields an empty Ready state, never an error state.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// CartStore owns one cart collection and its persistence key. Mutations
// update memory synchronously, persist the full collection, then broadcast
// asynchronously so other instances on the same key re-read and converge.
// A per-line in-flight guard turns rapid duplicate mutations for the same
// (productID, weight) pair into silent no-ops.
type CartStore struct {
	key     string
	storage Storage
	hub     *Hub
	log     logrus.FieldLogger
	guard   *inflight

	mu    sync.RWMutex
	state State
	lines []models.CartLine

	// persistMu serializes snapshot+write so concurrent mutations on
	// different lines cannot land their snapshots out of order.
	persistMu sync.Mutex

	hubID int
	unsub func()
}

// NewCartStore hydrates a cart store from storage. The read is synchronous;
// the returned store is always Ready.
func NewCartStore(key string, storage Storage, hub *Hub, log logrus.FieldLogger) *CartStore {
	s := &CartStore{
		key:     key,
		storage: storage,
		hub:     hub,
		log:     log,
		guard:   newInflight(DefaultCooldown),
	}
	s.state = StateLoading
	s.lines = s.readLines()
	s.state = StateReady

	if hub != nil {
		s.hubID, s.unsub = hub.Subscribe(key, s.Reload)
	}
	return s
}

// Close detaches the store from the broadcast hub.
func (s *CartStore) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

func (s *CartStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to run after any mutation of this key, including
// mutations made through other store instances. It returns an unsubscribe
// func. Callbacks run off the mutating goroutine.
func (s *CartStore) Subscribe(fn func()) (unsubscribe func()) {
	if s.hub == nil {
		return func() {}
	}
	_, unsub := s.hub.Subscribe(s.key, fn)
	return unsub
}

// Add puts quantity units of (productID, weight) in the cart, merging into an
// existing line when the pair is already present. It reports false when the
// mutation was suppressed by the in-flight guard or the quantity is invalid.
func (s *CartStore) Add(productID, quantity int, weight string) bool {
	if quantity < 1 {
		return false
	}
	return s.mutateLine(productID, weight, func() {
		for i := range s.lines {
			if s.lines[i].ProductID == productID && s.lines[i].Weight == weight {
				s.lines[i].Quantity += quantity
				return
			}
		}
		s.lines = append(s.lines, models.CartLine{
			ProductID: productID,
			Quantity:  quantity,
			Weight:    weight,
		})
	})
}

// Remove drops the (productID, weight) line entirely.
func (s *CartStore) Remove(productID int, weight string) bool {
	return s.mutateLine(productID, weight, func() {
		s.removeLocked(productID, weight)
	})
}

// SetQuantity pins a line to an absolute quantity; zero or less removes the
// line, matching Remove.
func (s *CartStore) SetQuantity(productID int, weight string, quantity int) bool {
	return s.mutateLine(productID, weight, func() {
		if quantity <= 0 {
			s.removeLocked(productID, weight)
			return
		}
		for i := range s.lines {
			if s.lines[i].ProductID == productID && s.lines[i].Weight == weight {
				s.lines[i].Quantity = quantity
				return
			}
		}
		s.lines = append(s.lines, models.CartLine{
			ProductID: productID,
			Quantity:  quantity,
			Weight:    weight,
		})
	})
}

// Clear destroys the whole collection.
func (s *CartStore) Clear() bool {
	if !s.guard.tryAcquire("clear") {
		return false
	}
	defer s.guard.release("clear")

	s.persistMu.Lock()
	s.mu.Lock()
	s.lines = nil
	data := s.marshalLocked()
	s.mu.Unlock()
	s.persist(data)
	s.persistMu.Unlock()

	s.broadcast()
	return true
}

// Count is the sum of quantities across all lines.
func (s *CartStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Find returns the line for (productID, weight) if present.
func (s *CartStore) Find(productID int, weight string) (models.CartLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lines {
		if l.ProductID == productID && l.Weight == weight {
			return l, true
		}
	}
	return models.CartLine{}, false
}

// Lines returns a copy of the collection in insertion order.
func (s *CartStore) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Reload re-reads the persisted collection, discarding in-memory state. The
// hub calls this when another instance of the same key mutates.
func (s *CartStore) Reload() {
	lines := s.readLines()
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}

func (s *CartStore) mutateLine(productID int, weight string, apply func()) bool {
	guardKey := fmt.Sprintf("%d|%s", productID, weight)
	if !s.guard.tryAcquire(guardKey) {
		return false
	}
	defer s.guard.release(guardKey)

	// Holding persistMu across snapshot and write keeps writes in snapshot
	// order; a stale snapshot can otherwise overwrite a newer one.
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

func (s *CartStore) removeLocked(productID int, weight string) {
	out := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID == productID && l.Weight == weight {
			continue
		}
		out = append(out, l)
	}
	s.lines = out
}

func (s *CartStore) marshalLocked() []byte {
	lines := s.lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		// A slice of plain structs cannot fail to marshal.
		return []byte("[]")
	}
	return data
}

// persist writes the full collection. Write failures are not retried and are
// never surfaced; the in-memory state stays authoritative for the session.
func (s *CartStore) persist(data []byte) {
	if err := s.storage.Write(s.key, data); err != nil && s.log != nil {
		s.log.WithError(err).WithField("key", s.key).Debug("cart persist failed")
	}
}

func (s *CartStore) broadcast() {
	if s.hub != nil {
		s.hub.Publish(s.key, s.hubID)
	}
}

func (s *CartStore) readLines() []models.CartLine {
	data, ok, err := s.storage.Read(s.key)
	if err != nil || !ok {
		if err != nil && s.log != nil {
			s.log.WithError(err).WithField("key", s.key).Debug("cart read failed")
		}
		return nil
	}
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		// Malformed persisted data counts as no data.
		if s.log != nil {
			s.log.WithError(err).WithField("key", s.key).Debug("cart payload malformed")
		}
		return nil
	}
	return lines
}

// SetGuardCooldown overrides the in-flight safety-net cooldown; tests use a
// short value to exercise guard expiry without sleeping for long.
func (s *CartStore) SetGuardCooldown(d time.Duration) {
	s.guard.mu.Lock()
	s.guard.cooldown = d
	s.guard.mu.Unlock()
}
