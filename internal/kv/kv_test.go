package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, found, err := mem.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mem.Set(ctx, "products", []byte(`[]`)))
	value, found, err := mem.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[]`), value)
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	original := []byte(`{"a":1}`)
	require.NoError(t, mem.Set(ctx, "k", original))
	original[0] = 'X'

	value, _, err := mem.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value, "stored bytes must not alias the caller's slice")

	value[0] = 'Y'
	again, _, _ := mem.Get(ctx, "k")
	assert.Equal(t, []byte(`{"a":1}`), again)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, found, err := fs.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.False(t, found, "absent key reads as not found")

	require.NoError(t, fs.Set(ctx, "transactions", []byte(`[{"id":"tx-1"}]`)))
	value, found, err := fs.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[{"id":"tx-1"}]`), value)
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Set(ctx, "darkMode", []byte("false")))
	require.NoError(t, fs.Set(ctx, "darkMode", []byte("true")))

	value, found, err := fs.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("true"), value)
}

func TestFileStoreRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "a/b", `a\b`, "a.b"} {
		assert.Error(t, fs.Set(ctx, key, []byte("x")), "key %q", key)
		_, _, err := fs.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "notes", []byte(`[{"id":"note-1"}]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notes.json", filepath.Base(entries[0].Name()))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	value, found, err := second.Get(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[{"id":"note-1"}]`), value)
}
