package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store, err := NewStore(dir, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	path, err := store.Save([]byte("image-bytes"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	tracked := store.Tracked()
	require.Len(t, tracked, 1)
	assert.Equal(t, path, tracked[0].Path)
	assert.Equal(t, now, tracked[0].CreatedAt)
}

func TestStoreSave_UniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for range 10 {
		path, err := store.Save([]byte("x"), "image/png")
		require.NoError(t, err)
		assert.False(t, seen[path], "path %s reused", path)
		seen[path] = true
	}
	assert.Len(t, store.Tracked(), 10)
}

func TestNewStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExtensionFromMIME(t *testing.T) {
	tests := map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpg",
		"image/webp": "webp",
		"image/gif":  "gif",
		"":           "png",
		"who/knows":  "png",
	}
	for mime, want := range tests {
		assert.Equal(t, want, ExtensionFromMIME(mime), "mime %q", mime)
	}
}
