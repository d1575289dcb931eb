package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"sortd/internal/config"
	"sortd/internal/ledger"
)

// MustOpenStore opens the ledger for a test config and closes it on cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(cfg)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedWatchFiles creates the watched directory and writes one small file per
// name, returning the absolute paths in argument order.
func SeedWatchFiles(t testing.TB, cfg *config.Config, names ...string) []string {
	t.Helper()
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatalf("create watch dir: %v", err)
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(cfg.Paths.WatchDir, name)
		if err := os.WriteFile(path, []byte("content of "+name), 0o644); err != nil {
			t.Fatalf("seed file %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// WriteFileAt writes content to an arbitrary path, creating parents.
func WriteFileAt(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
