package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"sortd/internal/config"
)

// Store is the durable, append-only record of move batches, backed by SQLite.
// Appends and reversal markers are committed before the call returns, so an
// interrupted process never loses a completed batch.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.LedgerPath())
}

// OpenPath opens a ledger at an explicit location. Used by tests and by Open.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			// A store that cannot even take pragmas is unreadable.
			return nil, fmt.Errorf("%w: apply pragma %q: %w", ErrLedgerCorrupt, pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes a batch and its records in one transaction. A zero batch ID
// lets SQLite assign the next monotonic id; a caller-provided id that
// collides with an existing batch fails with ErrDuplicateBatchID. The batch
// is updated in place with the assigned ids.
func (s *Store) Append(ctx context.Context, batch *MoveBatch) error {
	if batch == nil {
		return errors.New("batch is nil")
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var res sql.Result
	if batch.ID != 0 {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO batches (id, run_id, created_at, dry_run) VALUES (?, ?, ?, ?)`,
			batch.ID, batch.RunID, batch.CreatedAt.Format(time.RFC3339Nano), boolToInt(batch.DryRun),
		)
	} else {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO batches (run_id, created_at, dry_run) VALUES (?, ?, ?)`,
			batch.RunID, batch.CreatedAt.Format(time.RFC3339Nano), boolToInt(batch.DryRun),
		)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: batch %d", ErrDuplicateBatchID, batch.ID)
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	if batch.ID == 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		batch.ID = id
	}

	for i := range batch.Records {
		record := &batch.Records[i]
		record.BatchID = batch.ID
		record.Seq = i
		if record.MovedAt.IsZero() {
			record.MovedAt = batch.CreatedAt
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO records (
                batch_id, seq, source_path, destination_path,
                category, status, failure_reason, moved_at, reversed
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			record.BatchID,
			record.Seq,
			record.SourcePath,
			record.DestinationPath,
			record.Category,
			string(record.Status),
			nullableString(record.FailureReason),
			record.MovedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
		if record.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("record insert id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// PeekLast returns up to n non-reversed batches, most recent first, with
// records in original execution order. n <= 0 yields an empty slice.
func (s *Store) PeekLast(ctx context.Context, n int) ([]*MoveBatch, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.queryBatches(ctx,
		`SELECT id, run_id, created_at, dry_run, reversed, reversed_at
         FROM batches WHERE reversed = 0 ORDER BY id DESC LIMIT ?`, n)
}

// History returns the most recent batches regardless of reversal state,
// most recent first. limit <= 0 returns the full history.
func (s *Store) History(ctx context.Context, limit int) ([]*MoveBatch, error) {
	if limit <= 0 {
		return s.queryBatches(ctx,
			`SELECT id, run_id, created_at, dry_run, reversed, reversed_at
             FROM batches ORDER BY id DESC`)
	}
	return s.queryBatches(ctx,
		`SELECT id, run_id, created_at, dry_run, reversed, reversed_at
         FROM batches ORDER BY id DESC LIMIT ?`, limit)
}

func (s *Store) queryBatches(ctx context.Context, query string, args ...any) ([]*MoveBatch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []*MoveBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}

	for _, batch := range batches {
		if batch.Records, err = s.recordsForBatch(ctx, batch.ID); err != nil {
			return nil, err
		}
	}
	return batches, nil
}

func (s *Store) recordsForBatch(ctx context.Context, batchID int64) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, batch_id, seq, source_path, destination_path,
                category, status, failure_reason, moved_at, reversed
         FROM records WHERE batch_id = ? ORDER BY seq`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanBatch(rows *sql.Rows) (*MoveBatch, error) {
	var (
		batch      MoveBatch
		createdAt  string
		dryRun     int
		reversed   int
		reversedAt sql.NullString
	)
	if err := rows.Scan(&batch.ID, &batch.RunID, &createdAt, &dryRun, &reversed, &reversedAt); err != nil {
		return nil, fmt.Errorf("scan batch: %w", err)
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: batch %d created_at %q: %w", ErrLedgerCorrupt, batch.ID, createdAt, err)
	}
	batch.CreatedAt = created
	batch.DryRun = dryRun != 0
	batch.Reversed = reversed != 0
	if reversedAt.Valid && reversedAt.String != "" {
		ts, err := time.Parse(time.RFC3339Nano, reversedAt.String)
		if err != nil {
			return nil, fmt.Errorf("%w: batch %d reversed_at %q: %w", ErrLedgerCorrupt, batch.ID, reversedAt.String, err)
		}
		batch.ReversedAt = ts
	}
	return &batch, nil
}

func scanRecord(rows *sql.Rows) (FileRecord, error) {
	var (
		record        FileRecord
		status        string
		failureReason sql.NullString
		movedAt       string
		reversed      int
	)
	err := rows.Scan(
		&record.ID, &record.BatchID, &record.Seq,
		&record.SourcePath, &record.DestinationPath,
		&record.Category, &status, &failureReason, &movedAt, &reversed,
	)
	if err != nil {
		return FileRecord{}, fmt.Errorf("scan record: %w", err)
	}

	record.Status = Status(status)
	if !ValidStatus(record.Status) {
		return FileRecord{}, fmt.Errorf("%w: record %d has unknown status %q", ErrLedgerCorrupt, record.ID, status)
	}
	record.FailureReason = failureReason.String
	record.Reversed = reversed != 0

	moved, err := time.Parse(time.RFC3339Nano, movedAt)
	if err != nil {
		return FileRecord{}, fmt.Errorf("%w: record %d moved_at %q: %w", ErrLedgerCorrupt, record.ID, movedAt, err)
	}
	record.MovedAt = moved
	return record, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed")
}
