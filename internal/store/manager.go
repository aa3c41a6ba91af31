// internal/store/manager.go
package store

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager hands out one long-lived store per persistence key so the in-flight
// guards span requests. Cart keys look like "cart:<user-id>", favorites keys
// like "favorites:<user-id>".
type Manager struct {
	storage Storage
	hub     *Hub
	log     logrus.FieldLogger

	mu        sync.Mutex
	carts     map[string]*CartStore
	favorites map[string]*FavoritesStore
}

func NewManager(storage Storage, hub *Hub, log logrus.FieldLogger) *Manager {
	return &Manager{
		storage:   storage,
		hub:       hub,
		log:       log,
		carts:     make(map[string]*CartStore),
		favorites: make(map[string]*FavoritesStore),
	}
}

// Cart returns the cart store for key, creating and hydrating it on first use.
func (m *Manager) Cart(key string) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.carts[key]; ok {
		return s
	}
	s := NewCartStore(key, m.storage, m.hub, m.log)
	m.carts[key] = s
	return s
}

// Favorites returns the favorites store for key, creating it on first use.
func (m *Manager) Favorites(key string) *FavoritesStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.favorites[key]; ok {
		return s
	}
	s := NewFavoritesStore(key, m.storage, m.hub, m.log)
	m.favorites[key] = s
	return s
}
