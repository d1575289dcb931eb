package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"sortd/internal/fsys"
	"sortd/internal/logging"
)

// UndoLast reverses up to n of the most recent non-reversed batches. Within a
// batch, records are replayed in reverse order of original execution. A
// per-record reversal failure is reported and skipped, never aborting the
// rest of the undo. A batch is marked reversed only when every moved record
// in it has been moved back; partially reversed batches stay available for a
// later retry. n = 0 is a no-op and n beyond the available history undoes
// everything there is.
func (s *Store) UndoLast(ctx context.Context, n int, fs fsys.FS, logger *slog.Logger) (*UndoReport, error) {
	report := &UndoReport{}
	if n <= 0 {
		return report, nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	batches, err := s.PeekLast(ctx, n)
	if err != nil {
		return nil, err
	}

	for _, batch := range batches {
		batchUndo, err := s.undoBatch(ctx, batch, fs, logger)
		if err != nil {
			return nil, err
		}
		report.Batches = append(report.Batches, batchUndo)
	}
	return report, nil
}

func (s *Store) undoBatch(ctx context.Context, batch *MoveBatch, fs fsys.FS, logger *slog.Logger) (BatchUndo, error) {
	batchUndo := BatchUndo{BatchID: batch.ID}
	var reversedRecordIDs []int64

	for i := len(batch.Records) - 1; i >= 0; i-- {
		record := &batch.Records[i]
		if record.Reversed {
			// Already handled by an earlier, partially successful undo.
			continue
		}

		if record.Status != StatusMoved {
			record.Reversed = true
			reversedRecordIDs = append(reversedRecordIDs, record.ID)
			batchUndo.Trivial++
			continue
		}

		if failure, ok := restoreRecord(fs, record); !ok {
			logger.Warn("undo skipped record",
				logging.Int64("batch_id", batch.ID),
				logging.Int("seq", record.Seq),
				logging.String("reason", failure.Reason),
				logging.String("detail", failure.Detail),
			)
			batchUndo.Collisions = append(batchUndo.Collisions, failure)
			continue
		}

		record.Reversed = true
		reversedRecordIDs = append(reversedRecordIDs, record.ID)
		batchUndo.Restored++
		logger.Info("restored file",
			logging.Int64("batch_id", batch.ID),
			logging.String("path", record.SourcePath),
		)
	}

	batchUndo.FullyReversed = true
	for _, record := range batch.Records {
		if record.Status == StatusMoved && !record.Reversed {
			batchUndo.FullyReversed = false
			break
		}
	}

	if err := s.markReversed(ctx, batch.ID, reversedRecordIDs, batchUndo.FullyReversed); err != nil {
		return BatchUndo{}, err
	}
	if batchUndo.FullyReversed {
		batch.Reversed = true
	}
	return batchUndo, nil
}

// restoreRecord moves a record's destination back to its source. The source
// parent directory is recreated when missing. An occupied source path or a
// vanished destination fails the record without touching anything.
func restoreRecord(fs fsys.FS, record *FileRecord) (UndoFailure, bool) {
	failure := UndoFailure{
		Seq:             record.Seq,
		SourcePath:      record.SourcePath,
		DestinationPath: record.DestinationPath,
	}

	if !fsys.Exists(fs, record.DestinationPath) {
		failure.Reason = ReasonSourceVanished
		failure.Detail = "file to restore no longer exists"
		return failure, false
	}
	if fsys.Exists(fs, record.SourcePath) {
		failure.Reason = ReasonUndoCollision
		failure.Detail = "a file now occupies the original path"
		return failure, false
	}

	if parent := filepath.Dir(record.SourcePath); parent != "." && parent != "" {
		if err := fs.MkdirAll(parent, 0o755); err != nil {
			failure.Reason = ReasonMoveDenied
			failure.Detail = err.Error()
			return failure, false
		}
	}
	if err := fs.Rename(record.DestinationPath, record.SourcePath); err != nil {
		failure.Reason = ReasonMoveDenied
		failure.Detail = err.Error()
		return failure, false
	}
	return UndoFailure{}, true
}

// markReversed flushes per-record reversal state and, when the whole batch is
// reversed, the batch's terminal marker, in one committed transaction.
func (s *Store) markReversed(ctx context.Context, batchID int64, recordIDs []int64, batchDone bool) error {
	if len(recordIDs) == 0 && !batchDone {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin undo tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range recordIDs {
		if _, err := tx.ExecContext(ctx, `UPDATE records SET reversed = 1 WHERE id = ?`, id); err != nil {
			return fmt.Errorf("mark record %d reversed: %w", id, err)
		}
	}
	if batchDone {
		reversedAt := time.Now().UTC().Format(time.RFC3339Nano)
		if _, err := tx.ExecContext(ctx,
			`UPDATE batches SET reversed = 1, reversed_at = ? WHERE id = ?`, reversedAt, batchID); err != nil {
			return fmt.Errorf("mark batch %d reversed: %w", batchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit undo: %w", err)
	}
	return nil
}
