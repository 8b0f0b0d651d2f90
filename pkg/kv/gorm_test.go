package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *Gorm {
	t.Helper()

	store, err := NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "mobilecart:cart", []byte(`{"items":[]}`)))

	raw, err := store.Get(ctx, "mobilecart:cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(raw))
}

func TestGormStoreUpsertOverwrites(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte(`1`)))
	require.NoError(t, store.Set(ctx, "k", []byte(`2`)))

	raw, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", string(raw))
}

func TestGormStoreGetMissing(t *testing.T) {
	store := setupSQLiteStore(t)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreDelete(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte(`1`)))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing key is a no-op
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestGormStorePing(t *testing.T) {
	store := setupSQLiteStore(t)
	require.NoError(t, store.Ping(context.Background()))
}
