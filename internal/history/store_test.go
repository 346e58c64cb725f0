// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestOpenRunsMigrations(t *testing.T) {
	_, path := openTestStore(t)

	sqlDB, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	var name string
	err = sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'history'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "history", name)

	// Re-opening an existing database must not fail.
	again, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestAddListClear(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return base }

	id1, err := store.Add(ctx, Entry{Operation: "det", Input: "4 0\n0 9", Result: "36"})
	require.NoError(t, err)
	id2, err := store.Add(ctx, Entry{Operation: "solve", Result: "x = [0.8000 1.4000]", CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "solve", all[0].Operation)
	require.Equal(t, "det", all[1].Operation)
	require.Equal(t, "4 0\n0 9", all[1].Input)
	require.True(t, all[1].CreatedAt.Equal(base))

	latest, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	require.Equal(t, id2, latest[0].ID)

	require.NoError(t, store.Clear(ctx))
	all, err = store.List(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestAddRequiresOperation(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.Add(context.Background(), Entry{Operation: " "})
	require.ErrorContains(t, err, "operation is required")
}

func TestNilStore(t *testing.T) {
	var s *Store
	require.NoError(t, s.Close())
	_, err := s.Add(context.Background(), Entry{Operation: "det"})
	require.Error(t, err)
	_, err = s.List(context.Background(), 0)
	require.Error(t, err)
	require.Error(t, s.Clear(context.Background()))
}
