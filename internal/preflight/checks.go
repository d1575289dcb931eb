package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"sortd/internal/config"
	"sortd/internal/ledger"
)

// Result captures a single preflight check outcome.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Check evaluates whether an organize or undo run can proceed: the watched
// directory must exist with full access, the log directory must be creatable,
// and the ledger must open cleanly.
func Check(cfg *config.Config) []Result {
	return []Result{
		checkDirectory("Watched directory", cfg.Paths.WatchDir, false),
		checkDirectory("Log directory", cfg.Paths.LogDir, true),
		checkLedger(cfg),
	}
}

// Passed reports whether every result in the set succeeded.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func checkDirectory(name, path string, create bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if !create {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created)", path)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func checkLedger(cfg *config.Config) Result {
	const name = "Undo ledger"
	store, err := ledger.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.LedgerPath(), err)}
	}
	defer store.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (ok)", store.Path())}
}
