// internal/userstore/userstore.go
package userstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medolina/medolina-backend/internal/models"
)

var (
	ErrEmailTaken   = errors.New("userstore: email already registered")
	ErrUserNotFound = errors.New("userstore: user not found")
	// ErrBadPassword covers both unknown email and wrong password so callers
	// cannot tell the cases apart.
	ErrBadPassword = errors.New("userstore: invalid credentials")
	// ErrLegacyPassword marks a stored plaintext row. The runtime refuses to
	// compare plaintext; run cmd/migrate once to hash such rows.
	ErrLegacyPassword = errors.New("userstore: legacy plaintext password, migration required")
)

// document is the on-disk layout: one JSON object holding the user records
// and a parallel map from lowercased email to bcrypt hash.
type document struct {
	Users     []models.User     `json:"users"`
	Passwords map[string]string `json:"passwords"`
}

// Store is the system of record for accounts. It exclusively owns read,
// modify and write of its file; every mutation rewrites the whole document
// through a temp file + rename.
type Store struct {
	path string

	mu  sync.RWMutex
	doc document
}

// Open loads the store from path, starting empty when the file is absent.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: document{Passwords: make(map[string]string)}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("userstore: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("userstore: decode %s: %w", path, err)
	}
	if s.doc.Passwords == nil {
		s.doc.Passwords = make(map[string]string)
	}
	return s, nil
}

// Create registers a new user. Email uniqueness is case-insensitive.
func (s *Store) Create(firstName, lastName, email, password, phone string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	for _, u := range s.doc.Users {
		if normalizeEmail(u.Email) == key {
			return models.User{}, ErrEmailTaken
		}
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("userstore: hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	s.doc.Users = append(s.doc.Users, user)
	s.doc.Passwords[key] = hash

	if err := s.saveLocked(); err != nil {
		// Roll the in-memory document back so a failed write cannot leave a
		// user that was never persisted.
		s.doc.Users = s.doc.Users[:len(s.doc.Users)-1]
		delete(s.doc.Passwords, key)
		return models.User{}, err
	}
	return user, nil
}

// GetByEmail looks a user up case-insensitively.
func (s *Store) GetByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := normalizeEmail(email)
	for _, u := range s.doc.Users {
		if normalizeEmail(u.Email) == key {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) GetByID(id uuid.UUID) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.doc.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UpdateFields carries a partial profile update. Email is deliberately not a
// field here: the API strips it and the store never rewrites it.
type UpdateFields struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Avatar    *string
}

// Update applies the set fields to a user record and persists the document.
func (s *Store) Update(id uuid.UUID, fields UpdateFields) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Users {
		if s.doc.Users[i].ID != id {
			continue
		}
		prev := s.doc.Users[i]
		if fields.FirstName != nil {
			s.doc.Users[i].FirstName = *fields.FirstName
		}
		if fields.LastName != nil {
			s.doc.Users[i].LastName = *fields.LastName
		}
		if fields.Phone != nil {
			s.doc.Users[i].Phone = *fields.Phone
		}
		if fields.Avatar != nil {
			s.doc.Users[i].Avatar = *fields.Avatar
		}
		if err := s.saveLocked(); err != nil {
			s.doc.Users[i] = prev
			return models.User{}, err
		}
		return s.doc.Users[i], nil
	}
	return models.User{}, ErrUserNotFound
}

// VerifyPassword checks credentials. Unknown email and wrong password both
// come back as ErrBadPassword. Plaintext legacy rows are refused outright.
func (s *Store) VerifyPassword(email, password string) error {
	s.mu.RLock()
	hash, ok := s.doc.Passwords[normalizeEmail(email)]
	s.mu.RUnlock()

	if !ok {
		return ErrBadPassword
	}
	if !isBcryptHash(hash) {
		return ErrLegacyPassword
	}
	if err := models.CheckPassword(hash, password); err != nil {
		return ErrBadPassword
	}
	return nil
}

// MigratePlaintext hashes every legacy plaintext password row in place and
// returns how many rows were rewritten. This is the one-time migration run by
// cmd/migrate; the runtime never compares plaintext.
func (s *Store) MigratePlaintext() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	migrated := 0
	for email, value := range s.doc.Passwords {
		if isBcryptHash(value) {
			continue
		}
		hash, err := models.HashPassword(value)
		if err != nil {
			return migrated, fmt.Errorf("userstore: hash password for %s: %w", email, err)
		}
		s.doc.Passwords[email] = hash
		migrated++
	}
	if migrated == 0 {
		return 0, nil
	}
	if err := s.saveLocked(); err != nil {
		return migrated, err
	}
	return migrated, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Users)
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("userstore: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("userstore: create dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("userstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("userstore: rename: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isBcryptHash(v string) bool {
	return strings.HasPrefix(v, "$2a$") || strings.HasPrefix(v, "$2b$") ||
		strings.HasPrefix(v, "$2y$")
}
