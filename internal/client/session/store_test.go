package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/teamboard/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(db)
}

func TestLoadEmpty(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &api.User{ID: 1, Username: "dave", FullName: "Dave D", CurrentStatus: "Working"}
	require.NoError(t, s.Save(ctx, "token-abc", user))

	token, loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", token)
	assert.Equal(t, "dave", loaded.Username)
	assert.Equal(t, "Working", loaded.CurrentStatus)
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "old", &api.User{ID: 1, Username: "dave"}))
	require.NoError(t, s.Save(ctx, "new", &api.User{ID: 2, Username: "erin"}))

	token, user, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
	assert.Equal(t, "erin", user.Username)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "token-abc", &api.User{ID: 1, Username: "dave"}))
	require.NoError(t, s.Clear(ctx))

	_, _, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}
