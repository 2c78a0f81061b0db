package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/session"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := session.NewFileStore(path)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.Get()
	assert.False(t, ok, "a fresh store is empty")

	want := session.Session{
		User:      models.User{UUID: "u-1", Name: "Jamie", Email: "jamie@example.com"},
		ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
	}
	require.NoError(t, store.Set(want))

	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.True(t, store.IsValid(time.Now()))

	require.NoError(t, store.Clear())
	_, ok = store.Get()
	assert.False(t, ok)
}

func TestFileStoreSetReplacesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := session.NewFileStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(session.Session{User: models.User{Name: "first"}, ExpiresAt: 1}))
	require.NoError(t, store.Set(session.Session{User: models.User{Name: "second"}, ExpiresAt: 2}))

	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "second", got.User.Name)
	assert.Equal(t, int64(2), got.ExpiresAt)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := session.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(session.Session{User: models.User{Name: "Jamie"}, ExpiresAt: 42}))
	require.NoError(t, store.Close())

	reopened, err := session.NewFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Get()
	require.True(t, ok)
	assert.Equal(t, "Jamie", got.User.Name)
}
