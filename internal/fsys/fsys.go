package fsys

import (
	"errors"
	"io/fs"
	"os"
)

// FS is the capability set the mover and the undo path need from a
// filesystem. The OS implementation is the only one used in production;
// tests inject wrappers to simulate denied or cross-device moves.
type FS interface {
	Stat(path string) (fs.FileInfo, error)
	Rename(oldPath, newPath string) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
}

// OS implements FS against the real filesystem.
type OS struct{}

func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (OS) Rename(oldPath, newPath string) error { return os.Rename(oldPath, newPath) }

func (OS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func (OS) Remove(path string) error { return os.Remove(path) }

// Exists reports whether a path exists on the given filesystem. Errors other
// than fs.ErrNotExist are treated as existence so callers never overwrite a
// path they cannot inspect.
func Exists(fsys FS, path string) bool {
	_, err := fsys.Stat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}
