package testutil

import (
	"io/fs"
	"path"
	"sort"
	"sync"
	"testing"

	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"

	tfs "github.com/arthur-debert/tokenrule/pkg/filesystem"
)

// TestFS wraps the synthfs in-memory filesystem to implement
// filesystem.FS. It lists the files written through it, so ReadDir only
// sees those.
type TestFS struct {
	*filesystem.TestFileSystem

	mu    sync.Mutex
	files map[string]struct{}
}

// NewTestFS creates an empty in-memory filesystem. Paths are relative.
func NewTestFS() *TestFS {
	return &TestFS{
		TestFileSystem: filesystem.NewTestFileSystem(),
		files:          make(map[string]struct{}),
	}
}

var (
	_ tfs.FS      = (*TestFS)(nil)
	_ tfs.Renamer = (*TestFS)(nil)
)

// WriteFile implements filesystem.FS
func (t *TestFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := t.TestFileSystem.WriteFile(name, data, perm); err != nil {
		return err
	}
	t.mu.Lock()
	t.files[path.Clean(name)] = struct{}{}
	t.mu.Unlock()
	return nil
}

// Remove implements filesystem.FS
func (t *TestFS) Remove(name string) error {
	if _, err := t.Stat(name); err != nil {
		return err
	}
	if err := t.TestFileSystem.Remove(name); err != nil {
		return err
	}
	t.mu.Lock()
	delete(t.files, path.Clean(name))
	t.mu.Unlock()
	return nil
}

// Rename implements filesystem.Renamer by copying the file
func (t *TestFS) Rename(oldpath, newpath string) error {
	data, err := t.ReadFile(oldpath)
	if err != nil {
		return err
	}
	info, err := t.Stat(oldpath)
	if err != nil {
		return err
	}
	if err := t.WriteFile(newpath, data, info.Mode().Perm()); err != nil {
		return err
	}
	return t.Remove(oldpath)
}

// ReadDir implements filesystem.FS for the files written through t
func (t *TestFS) ReadDir(name string) ([]fs.DirEntry, error) {
	dir := path.Clean(name)
	if _, err := t.Stat(dir); err != nil {
		return nil, err
	}

	t.mu.Lock()
	var names []string
	for file := range t.files {
		if path.Dir(file) == dir {
			names = append(names, file)
		}
	}
	t.mu.Unlock()
	sort.Strings(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, file := range names {
		info, err := t.Stat(file)
		if err != nil {
			continue
		}
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

// CreateFileT writes content to name, creating parent directories
func CreateFileT(t *testing.T, fsys tfs.FS, name, content string) {
	t.Helper()
	if err := fsys.MkdirAll(path.Dir(name), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", path.Dir(name), err)
	}
	if err := fsys.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
