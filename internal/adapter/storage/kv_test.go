package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyValueStore(t *testing.T, kv port.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	v, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, kv.Set(ctx, "cart", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "user", []byte(`{"id":"123"}`)))

	v, err = kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)

	require.NoError(t, kv.Set(ctx, "cart", []byte(`[{}]`)))
	v, err = kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{}]`), v)

	require.NoError(t, kv.Delete(ctx, "cart"))
	v, err = kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = kv.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"123"}`), v)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = kv.Get(canceled, "user")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, kv.Set(canceled, "user", nil), context.Canceled)
	assert.ErrorIs(t, kv.Delete(canceled, "user"), context.Canceled)
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	defer kv.Close()
	testKeyValueStore(t, kv)
}

func TestLevelDBKV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db")

	t.Run("Operations", func(t *testing.T) {
		kv, err := OpenLevelDBKV(ctx, path)
		require.NoError(t, err)
		testKeyValueStore(t, kv)
		kv.Close()
	})

	t.Run("Persists", func(t *testing.T) {
		kv, err := OpenLevelDBKV(ctx, path)
		require.NoError(t, err)
		v, err := kv.Get(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"id":"123"}`), v)
		kv.Close()
	})
}
