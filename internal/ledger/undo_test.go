package ledger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sortd/internal/fsys"
	"sortd/internal/ledger"
	"sortd/internal/testsupport"
)

// movedBatch physically places files in a category folder and returns the
// matching appended batch, simulating a prior organize run.
func movedBatch(t *testing.T, store *ledger.Store, watchDir string, names ...string) *ledger.MoveBatch {
	t.Helper()
	batch := &ledger.MoveBatch{RunID: "undo-test"}
	for _, name := range names {
		source := filepath.Join(watchDir, name)
		dest := filepath.Join(watchDir, "Documents", name)
		testsupport.WriteFileAt(t, dest, "content of "+name)
		batch.Records = append(batch.Records, ledger.FileRecord{
			SourcePath:      source,
			DestinationPath: dest,
			Category:        "Documents",
			Status:          ledger.StatusMoved,
		})
	}
	if err := store.Append(context.Background(), batch); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	return batch
}

func TestUndoLastRestoresMovedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}

	batch := movedBatch(t, store, cfg.Paths.WatchDir, "a.pdf", "b.pdf")

	report, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	if len(report.Batches) != 1 {
		t.Fatalf("expected one batch in report: %#v", report)
	}
	if report.Batches[0].Restored != 2 || !report.Batches[0].FullyReversed {
		t.Fatalf("unexpected report: %#v", report.Batches[0])
	}

	for _, record := range batch.Records {
		if _, err := os.Stat(record.SourcePath); err != nil {
			t.Fatalf("source not restored: %v", err)
		}
		if _, err := os.Stat(record.DestinationPath); !os.IsNotExist(err) {
			t.Fatalf("destination should be gone: %v", err)
		}
	}
}

func TestUndoLastRecreatesMissingSourceParent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	nested := filepath.Join(cfg.Paths.WatchDir, "incoming")
	dest := filepath.Join(cfg.Paths.WatchDir, "Documents", "a.pdf")
	testsupport.WriteFileAt(t, dest, "x")
	batch := &ledger.MoveBatch{Records: []ledger.FileRecord{{
		SourcePath:      filepath.Join(nested, "a.pdf"),
		DestinationPath: dest,
		Category:        "Documents",
		Status:          ledger.StatusMoved,
	}}}
	if err := store.Append(ctx, batch); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	report, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	if !report.Batches[0].FullyReversed {
		t.Fatalf("expected full reversal: %#v", report.Batches[0])
	}
	if _, err := os.Stat(filepath.Join(nested, "a.pdf")); err != nil {
		t.Fatalf("source parent not recreated: %v", err)
	}
}

func TestUndoCollisionSkipsRecordWithoutAborting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}

	batch := movedBatch(t, store, cfg.Paths.WatchDir, "a.pdf", "b.pdf")
	// Occupy a.pdf's original path so its reversal collides.
	testsupport.WriteFileAt(t, batch.Records[0].SourcePath, "squatter")

	report, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	undo := report.Batches[0]
	if undo.Restored != 1 {
		t.Fatalf("expected one restored record: %#v", undo)
	}
	if len(undo.Collisions) != 1 || undo.Collisions[0].Reason != ledger.ReasonUndoCollision {
		t.Fatalf("expected one collision: %#v", undo.Collisions)
	}
	if undo.FullyReversed {
		t.Fatal("partially reversed batch must not be marked fully reversed")
	}

	// The squatter is untouched and the moved copy stays put.
	data, err := os.ReadFile(batch.Records[0].SourcePath)
	if err != nil || string(data) != "squatter" {
		t.Fatalf("occupying file touched: %q %v", data, err)
	}
	if _, err := os.Stat(batch.Records[0].DestinationPath); err != nil {
		t.Fatalf("colliding record's destination should remain: %v", err)
	}

	// The batch stays visible for a retry.
	remaining, err := store.PeekLast(ctx, 10)
	if err != nil {
		t.Fatalf("PeekLast failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("partially reversed batch should remain: %#v", remaining)
	}
}

func TestUndoRetryAfterCollisionCleared(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}

	batch := movedBatch(t, store, cfg.Paths.WatchDir, "a.pdf", "b.pdf")
	testsupport.WriteFileAt(t, batch.Records[0].SourcePath, "squatter")

	if _, err := store.UndoLast(ctx, 1, fsys.OS{}, nil); err != nil {
		t.Fatalf("first UndoLast failed: %v", err)
	}
	if err := os.Remove(batch.Records[0].SourcePath); err != nil {
		t.Fatal(err)
	}

	report, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("second UndoLast failed: %v", err)
	}
	undo := report.Batches[0]
	// b.pdf was already restored in the first pass; only a.pdf remains.
	if undo.Restored != 1 || !undo.FullyReversed {
		t.Fatalf("retry should finish the batch: %#v", undo)
	}
	if _, err := os.Stat(batch.Records[0].SourcePath); err != nil {
		t.Fatalf("a.pdf not restored on retry: %v", err)
	}
}

func TestUndoTwiceReportsNothingLeft(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}

	movedBatch(t, store, cfg.Paths.WatchDir, "a.pdf")

	first, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("first UndoLast failed: %v", err)
	}
	if len(first.Batches) != 1 {
		t.Fatalf("expected one batch: %#v", first)
	}

	second, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("second UndoLast failed: %v", err)
	}
	if len(second.Batches) != 0 {
		t.Fatalf("second undo should find nothing: %#v", second)
	}
}

func TestUndoZeroIsNoop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	report, err := store.UndoLast(context.Background(), 0, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	if len(report.Batches) != 0 {
		t.Fatalf("expected empty report: %#v", report)
	}
}

func TestUndoSkipsNonMovedRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	batch := &ledger.MoveBatch{Records: []ledger.FileRecord{
		{SourcePath: "/watch/a.txt", DestinationPath: "/watch/Other/a.txt", Category: "Other", Status: ledger.StatusSkipped},
		{SourcePath: "/watch/b.txt", DestinationPath: "/watch/Other/b.txt", Category: "Other", Status: ledger.StatusFailed, FailureReason: ledger.ReasonMoveDenied},
	}}
	if err := store.Append(ctx, batch); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	report, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	undo := report.Batches[0]
	if undo.Trivial != 2 || undo.Restored != 0 || !undo.FullyReversed {
		t.Fatalf("unexpected report: %#v", undo)
	}
}

func TestUndoVanishedDestinationReported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}

	batch := movedBatch(t, store, cfg.Paths.WatchDir, "a.pdf")
	if err := os.Remove(batch.Records[0].DestinationPath); err != nil {
		t.Fatal(err)
	}

	report, err := store.UndoLast(ctx, 1, fsys.OS{}, nil)
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	undo := report.Batches[0]
	if len(undo.Collisions) != 1 || undo.Collisions[0].Reason != ledger.ReasonSourceVanished {
		t.Fatalf("expected vanished-destination failure: %#v", undo)
	}
	if undo.FullyReversed {
		t.Fatal("batch with unrecoverable record must stay unreversed")
	}
}
