package filesystem

import (
	"errors"
	"io/fs"
)

// FS is the file access a rule store needs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Remove(name string) error
}

// Renamer is implemented by filesystems that can move a file into place
// in one step. FileStore writes through a temp file when it is available.
type Renamer interface {
	Rename(oldpath, newpath string) error
}

// IsNotExist reports whether err means the file does not exist
func IsNotExist(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}
