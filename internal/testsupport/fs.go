package testsupport

import (
	"io/fs"
	"os"

	"sortd/internal/fsys"
)

// FaultFS wraps a real filesystem and fails selected operations, letting
// tests exercise denied and cross-device move handling without special
// filesystem setups.
type FaultFS struct {
	Base fsys.FS
	// RenameErrs maps a source path to the error its rename should return.
	RenameErrs map[string]error
	// MkdirErr, when set, fails every MkdirAll call.
	MkdirErr error
}

// NewFaultFS builds a FaultFS over the OS filesystem.
func NewFaultFS() *FaultFS {
	return &FaultFS{Base: fsys.OS{}, RenameErrs: make(map[string]error)}
}

func (f *FaultFS) Stat(path string) (fs.FileInfo, error) { return f.Base.Stat(path) }

func (f *FaultFS) Rename(oldPath, newPath string) error {
	if err, ok := f.RenameErrs[oldPath]; ok {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}
	return f.Base.Rename(oldPath, newPath)
}

func (f *FaultFS) MkdirAll(path string, perm os.FileMode) error {
	if f.MkdirErr != nil {
		return f.MkdirErr
	}
	return f.Base.MkdirAll(path, perm)
}

func (f *FaultFS) Remove(path string) error { return f.Base.Remove(path) }
