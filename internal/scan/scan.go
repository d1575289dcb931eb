// Package scan lists the organize candidates in the watched directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options filter the directory listing.
type Options struct {
	// Ignore holds exact file names to leave untouched.
	Ignore []string
	// IncludeHidden admits dotfiles as candidates.
	IncludeHidden bool
}

// Files returns the absolute paths of regular files directly under dir, in
// sorted order. Subdirectories (category folders included) are never
// descended into.
func Files(dir string, opts Options) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read watch directory: %w", err)
	}

	ignored := make(map[string]struct{}, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignored[name] = struct{}{}
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if _, skip := ignored[name]; skip {
			continue
		}
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	sort.Strings(files)
	return files, nil
}
