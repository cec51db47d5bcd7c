package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_ValidFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.feature"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.feature"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0o644))

	got := Files(dir)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.feature"),
		filepath.Join(dir, "b.feature"),
		filepath.Join(dir, "notes.txt"),
	}, got)
}

func TestFiles_InvalidFolder(t *testing.T) {
	got := Files(filepath.Join(t.TempDir(), "a-fake-folder-name"))
	assert.Empty(t, got)
}

func TestFiles_NotRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep.feature"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.feature"), []byte(""), 0o644))

	assert.Equal(t, []string{filepath.Join(dir, "top.feature")}, Files(dir))
}

func TestFiles_MultipleFoldersKeepOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(first, "z.feature"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(second, "a.feature"), []byte(""), 0o644))

	got := Files(first, filepath.Join(first, "missing"), second)

	assert.Equal(t, []string{
		filepath.Join(first, "z.feature"),
		filepath.Join(second, "a.feature"),
	}, got)
}

func TestFiles_PathIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.feature")
	require.NoError(t, os.WriteFile(file, []byte(""), 0o644))

	assert.Empty(t, Files(file))
}

func TestWithExt(t *testing.T) {
	paths := []string{"f/a.feature", "f/b.txt", "f/c.feature"}
	assert.Equal(t, []string{"f/a.feature", "f/c.feature"}, WithExt(paths, ".feature"))
	assert.Equal(t, paths, WithExt(paths, ""))
	assert.Empty(t, WithExt(paths, ".md"))
}
