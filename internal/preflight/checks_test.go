package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"sortd/internal/testsupport"
)

func TestCheckPassesOnHealthySetup(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := Check(cfg)
	if !Passed(results) {
		t.Fatalf("expected all checks to pass: %#v", results)
	}
}

func TestCheckFailsWhenWatchDirMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.WatchDir = filepath.Join(testsupport.BaseDir(cfg), "nonexistent")

	results := Check(cfg)
	if Passed(results) {
		t.Fatal("expected watch-dir check to fail")
	}
	if results[0].Passed {
		t.Fatalf("watch dir result should fail: %#v", results[0])
	}
}

func TestCheckCreatesLogDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(cfg.Paths.LogDir); err != nil {
		t.Fatal(err)
	}

	results := Check(cfg)
	if !Passed(results) {
		t.Fatalf("expected checks to pass: %#v", results)
	}
	if _, err := os.Stat(cfg.Paths.LogDir); err != nil {
		t.Fatalf("log dir should exist: %v", err)
	}
}
