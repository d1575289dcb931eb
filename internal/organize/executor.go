package organize

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"sortd/internal/fsys"
	"sortd/internal/ledger"
)

// Draft carries a resolved move into the executor.
type Draft struct {
	SourcePath      string
	DestinationPath string
	Category        string
	Skip            bool
}

// Executor performs (or simulates) a single move and produces its record.
type Executor struct {
	fs fsys.FS
}

// NewExecutor builds an executor over the given filesystem.
func NewExecutor(fileSystem fsys.FS) *Executor {
	return &Executor{fs: fileSystem}
}

// Execute moves the draft's source to its destination, or records the intent
// when dryRun is set. Failures are captured in the returned record; the
// filesystem is touched at most once and never retried here.
func (e *Executor) Execute(draft Draft, dryRun bool) ledger.FileRecord {
	record := ledger.FileRecord{
		SourcePath:      draft.SourcePath,
		DestinationPath: draft.DestinationPath,
		Category:        draft.Category,
		MovedAt:         time.Now().UTC(),
	}

	if draft.Skip {
		record.Status = ledger.StatusSkipped
		return record
	}
	if dryRun {
		record.Status = ledger.StatusSimulated
		return record
	}

	if !fsys.Exists(e.fs, draft.SourcePath) {
		record.Status = ledger.StatusFailed
		record.FailureReason = ledger.ReasonSourceVanished
		return record
	}

	if err := e.fs.MkdirAll(filepath.Dir(draft.DestinationPath), 0o755); err != nil {
		record.Status = ledger.StatusFailed
		record.FailureReason = ledger.ReasonMoveDenied
		return record
	}

	if err := e.fs.Rename(draft.SourcePath, draft.DestinationPath); err != nil {
		record.Status = ledger.StatusFailed
		record.FailureReason = classifyMoveError(err)
		return record
	}

	record.Status = ledger.StatusMoved
	return record
}

func classifyMoveError(err error) string {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		err = linkErr.Err
	}
	switch {
	case errors.Is(err, syscall.EXDEV):
		return ledger.ReasonCrossDeviceMove
	case errors.Is(err, fs.ErrNotExist):
		return ledger.ReasonSourceVanished
	default:
		return ledger.ReasonMoveDenied
	}
}
