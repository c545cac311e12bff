package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "interpreters.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheOperations(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	modTime := time.Unix(1700000000, 123456789)
	entry := &Entry{
		Executable: "/usr/bin/python3.12",
		ModTime:    modTime,
		Size:       6_000_000,
		Info:       []byte(`{"major":3,"minor":12,"patch":1}`),
	}

	require.NoError(t, c.Put(ctx, entry))

	got, err := c.Get(ctx, "/usr/bin/python3.12")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Executable, got.Executable)
	assert.True(t, got.ModTime.Equal(modTime))
	assert.Equal(t, entry.Size, got.Size)
	assert.JSONEq(t, string(entry.Info), string(got.Info))
	assert.False(t, got.CachedAt.IsZero())

	t.Run("miss returns nil", func(t *testing.T) {
		missing, err := c.Get(ctx, "/usr/bin/python2")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("put replaces", func(t *testing.T) {
		updated := *entry
		updated.Size = 42
		require.NoError(t, c.Put(ctx, &updated))

		got, err := c.Get(ctx, entry.Executable)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Size)
	})

	t.Run("list and clear", func(t *testing.T) {
		require.NoError(t, c.Put(ctx, &Entry{Executable: "/opt/python/bin/python3", ModTime: modTime, Info: []byte("{}")}))

		entries, err := c.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "/opt/python/bin/python3", entries[0].Executable)

		require.NoError(t, c.Delete(ctx, "/opt/python/bin/python3"))
		require.NoError(t, c.Delete(ctx, "/does/not/exist"))

		n, err := c.Clear(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		entries, err = c.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestEntryFresh(t *testing.T) {
	modTime := time.Unix(1700000000, 5)
	entry := Entry{ModTime: modTime, Size: 10}

	assert.True(t, entry.Fresh(time.Unix(1700000000, 5), 10))
	assert.False(t, entry.Fresh(time.Unix(1700000000, 6), 10))
	assert.False(t, entry.Fresh(modTime, 11))
}

func TestOpenReusesDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "interpreters.db")

	c, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, &Entry{Executable: "/usr/bin/python3", ModTime: time.Unix(1, 0), Info: []byte("{}")}))
	require.NoError(t, c.Close())

	c, err = Open(ctx, path)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, path, c.Path())
	got, err := c.Get(ctx, "/usr/bin/python3")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
