package organize

import (
	"fmt"
	"path/filepath"
	"strings"

	"sortd/internal/fsys"
)

const maxNameAttempts = 10000

// Resolver computes collision-free destination paths under the target root.
// It re-checks the filesystem on every probe and additionally tracks paths
// claimed earlier in the same run, so two same-named sources in one batch
// disambiguate even in dry-run mode where nothing lands on disk.
type Resolver struct {
	fs         fsys.FS
	targetRoot string
	claimed    map[string]struct{}
}

// NewResolver builds a resolver rooted at the organize target directory.
func NewResolver(fs fsys.FS, targetRoot string) *Resolver {
	return &Resolver{
		fs:         fs,
		targetRoot: targetRoot,
		claimed:    make(map[string]struct{}),
	}
}

// Resolve computes the destination for sourcePath inside categoryDir (a path
// relative to the target root, e.g. "Documents" or "Documents/LargeFiles").
// skip is true when the source already lives in that directory; the caller
// records the file as skipped instead of moving it onto itself. Resolve never
// mutates resolver state: repeated calls against an unchanged filesystem
// return the same path. Claim reserves the result once it is consumed.
func (r *Resolver) Resolve(sourcePath, categoryDir string) (dest string, skip bool, err error) {
	destDir := filepath.Join(r.targetRoot, categoryDir)
	base := filepath.Base(sourcePath)

	if filepath.Dir(sourcePath) == destDir {
		return sourcePath, true, nil
	}

	candidate := filepath.Join(destDir, base)
	if r.free(candidate) {
		return candidate, false, nil
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, attempt, ext))
		if r.free(candidate) {
			return candidate, false, nil
		}
	}
	return "", false, fmt.Errorf("exhausted name candidates for %s in %s", base, destDir)
}

// Claim reserves a resolved path for the remainder of the run.
func (r *Resolver) Claim(path string) {
	r.claimed[path] = struct{}{}
}

func (r *Resolver) free(path string) bool {
	if _, taken := r.claimed[path]; taken {
		return false
	}
	return !fsys.Exists(r.fs, path)
}
