package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoSantosOFC/starship/internal/adapters/filesystem"
)

func TestRealFileSystem_RoundTrip(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewRealFileSystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	assert.False(t, fs.Exists(path))

	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, fs.WriteFile(path, []byte("content"), 0o644))

	assert.True(t, fs.Exists(path))
	assert.False(t, fs.IsDir(path))
	assert.True(t, fs.IsDir(filepath.Dir(path)))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, fs.Remove(path))
	assert.False(t, fs.Exists(path))
}

func TestRealFileSystem_ReadMissingFile(t *testing.T) {
	t.Parallel()

	fs := filesystem.NewRealFileSystem()
	_, err := fs.ReadFile(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
