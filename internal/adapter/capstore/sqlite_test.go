package capstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caps.db")
	ctx := context.Background()
	shownAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	store, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.SetLastShown(ctx, "u1", 1, shownAt))
	require.NoError(t, store.Close())

	// records survive a restart
	store, err = NewSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	last, ok, err := store.LastShown(ctx, "u1", 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, shownAt, last)
}

func TestSQLiteOverwrite(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "caps.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, store.SetLastShown(ctx, "u1", 1, first))
	require.NoError(t, store.SetLastShown(ctx, "u1", 1, second))

	last, ok, err := store.LastShown(ctx, "u1", 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, second, last)

	_, ok, err = store.LastShown(ctx, "u1", 99)
	require.NoError(t, err)
	require.False(t, ok)
}
