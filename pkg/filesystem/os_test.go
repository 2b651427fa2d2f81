package filesystem_test

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tokenrule/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOS(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, fsys.MkdirAll(dir, 0755))
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, fsys.WriteFile(file, []byte("one"), 0644))

	data, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	renamer, ok := fsys.(filesystem.Renamer)
	require.True(t, ok, "os filesystem supports rename")
	moved := filepath.Join(dir, "g.txt")
	require.NoError(t, renamer.Rename(file, moved))

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "g.txt", entries[0].Name())

	require.NoError(t, fsys.Remove(moved))
	_, err = fsys.Stat(moved)
	assert.True(t, filesystem.IsNotExist(err))
}

func TestIsNotExist(t *testing.T) {
	assert.False(t, filesystem.IsNotExist(nil))
	assert.True(t, filesystem.IsNotExist(fs.ErrNotExist))
	assert.True(t, filesystem.IsNotExist(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}))
	assert.False(t, filesystem.IsNotExist(fs.ErrPermission))
}
