// internal/userstore/userstore_test.go
package userstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medolina/medolina-backend/internal/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, 0, s.Len())
}

func TestCreateAndLookup(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.Create("Amina", "Hodžić", "amina@example.com", "tajna123", "+38761111222")
	require.NoError(t, err)
	assert.NotEqual(t, "", user.ID.String())
	assert.False(t, user.CreatedAt.IsZero())

	got, ok := s.GetByEmail("amina@example.com")
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)

	byID, ok := s.GetByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, "Amina", byID.FirstName)
}

func TestCreateRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create("Amina", "Hodžić", "amina@example.com", "tajna123", "")
	require.NoError(t, err)

	_, err = s.Create("Druga", "Osoba", "AMINA@Example.COM", "lozinka456", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, s.Len())
}

func TestVerifyPassword(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create("Amina", "Hodžić", "amina@example.com", "tajna123", "")
	require.NoError(t, err)

	assert.NoError(t, s.VerifyPassword("amina@example.com", "tajna123"))
	// Email lookup is case-insensitive too.
	assert.NoError(t, s.VerifyPassword("Amina@Example.com", "tajna123"))

	// Unknown email and wrong password are indistinguishable.
	wrongPass := s.VerifyPassword("amina@example.com", "pogresna")
	unknownUser := s.VerifyPassword("niko@example.com", "tajna123")
	assert.ErrorIs(t, wrongPass, ErrBadPassword)
	assert.ErrorIs(t, unknownUser, ErrBadPassword)
}

func TestPasswordsAreStoredHashed(t *testing.T) {
	s, path := newTestStore(t)

	_, err := s.Create("Amina", "Hodžić", "amina@example.com", "tajna123", "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tajna123")

	var doc struct {
		Passwords map[string]string `json:"passwords"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	hash := doc.Passwords["amina@example.com"]
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)
}

func TestLegacyPlaintextRowIsRefusedAtRuntime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	writeLegacyDocument(t, path)

	s, err := Open(path)
	require.NoError(t, err)

	err = s.VerifyPassword("stari@example.com", "starasifra")
	assert.ErrorIs(t, err, ErrLegacyPassword)
}

func TestMigratePlaintextHashesLegacyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	writeLegacyDocument(t, path)

	s, err := Open(path)
	require.NoError(t, err)

	migrated, err := s.MigratePlaintext()
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)

	// The migrated row now verifies with the original password.
	assert.NoError(t, s.VerifyPassword("stari@example.com", "starasifra"))

	// Running it again is a no-op.
	migrated, err = s.MigratePlaintext()
	require.NoError(t, err)
	assert.Equal(t, 0, migrated)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.Create("Amina", "Hodžić", "amina@example.com", "tajna123", "")
	require.NoError(t, err)

	phone := "+38762333444"
	updated, err := s.Update(user.ID, UpdateFields{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Amina", updated.FirstName)
	assert.Equal(t, "amina@example.com", updated.Email)

	_, err = s.Update(user.ID, UpdateFields{})
	assert.NoError(t, err)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)

	user, err := s.Create("Amina", "Hodžić", "amina@example.com", "tajna123", "")
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	got, ok := reopened.GetByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, "amina@example.com", got.Email)
	assert.NoError(t, reopened.VerifyPassword("amina@example.com", "tajna123"))
}

func writeLegacyDocument(t *testing.T, path string) {
	t.Helper()
	doc := document{
		Users: []models.User{{
			FirstName: "Stari",
			LastName:  "Korisnik",
			Email:     "stari@example.com",
		}},
		Passwords: map[string]string{"stari@example.com": "starasifra"},
	}
	data, err := json.Marshal(&doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}
