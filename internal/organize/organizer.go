package organize

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"sortd/internal/category"
	"sortd/internal/config"
	"sortd/internal/fsys"
	"sortd/internal/ledger"
	"sortd/internal/logging"
)

// Organizer drives categorize, resolve, and execute for a list of candidate
// files and commits the resulting batch to the ledger.
type Organizer struct {
	cfg         *config.Config
	store       *ledger.Store
	categorizer *category.Categorizer
	fs          fsys.FS
	logger      *slog.Logger
}

// Options control one organizer run.
type Options struct {
	DryRun bool
	// Limit stops the run after this many files when positive.
	Limit int
	// RunID correlates the batch with the invocation's log lines.
	RunID string
}

// New constructs an organizer using the real filesystem.
func New(cfg *config.Config, store *ledger.Store, logger *slog.Logger) *Organizer {
	return NewWithFS(cfg, store, logger, fsys.OS{})
}

// NewWithFS allows injecting the filesystem (used in tests).
func NewWithFS(cfg *config.Config, store *ledger.Store, logger *slog.Logger, fileSystem fsys.FS) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{
		cfg:         cfg,
		store:       store,
		categorizer: category.New(cfg.Categories),
		fs:          fileSystem,
		logger:      logger.With(logging.String("component", "organizer")),
	}
}

// Run processes files in the order given. Every file yields exactly one
// record, failures included; a single bad file never aborts the batch. The
// completed batch is appended to the ledger before Run returns, dry-run
// batches included.
func (o *Organizer) Run(ctx context.Context, files []string, opts Options) (*ledger.MoveBatch, error) {
	batch := &ledger.MoveBatch{
		RunID:     opts.RunID,
		CreatedAt: time.Now().UTC(),
		DryRun:    opts.DryRun,
	}

	resolver := NewResolver(o.fs, o.cfg.Paths.WatchDir)
	executor := NewExecutor(o.fs)

	for i, file := range files {
		if opts.Limit > 0 && i >= opts.Limit {
			o.logger.Info("preview limit reached", logging.Int("limit", opts.Limit))
			break
		}
		record := o.processFile(resolver, executor, file, opts.DryRun)
		batch.Records = append(batch.Records, record)
	}

	if err := o.store.Append(ctx, batch); err != nil {
		return nil, err
	}
	o.logger.Info("batch appended",
		logging.Int64("batch_id", batch.ID),
		logging.Int("records", len(batch.Records)),
		logging.Bool("dry_run", batch.DryRun),
	)
	return batch, nil
}

func (o *Organizer) processFile(resolver *Resolver, executor *Executor, file string, dryRun bool) ledger.FileRecord {
	name := filepath.Base(file)
	label := o.categorizer.Categorize(name)

	categoryDir := label
	if o.isLargeFile(file) {
		categoryDir = filepath.Join(label, config.LargeFilesDir)
	}

	dest, skip, err := resolver.Resolve(file, categoryDir)
	if err != nil {
		o.logger.Warn("destination resolution failed",
			logging.String("file", name),
			logging.Error(err),
		)
		return ledger.FileRecord{
			SourcePath:    file,
			Category:      label,
			Status:        ledger.StatusFailed,
			FailureReason: ledger.ReasonMoveDenied,
			MovedAt:       time.Now().UTC(),
		}
	}

	record := executor.Execute(Draft{
		SourcePath:      file,
		DestinationPath: dest,
		Category:        label,
		Skip:            skip,
	}, dryRun)

	switch record.Status {
	case ledger.StatusMoved, ledger.StatusSimulated:
		resolver.Claim(dest)
		o.logger.Info("placed file",
			logging.String("file", name),
			logging.String("category", label),
			logging.String("destination", dest),
			logging.Bool("dry_run", dryRun),
		)
	case ledger.StatusSkipped:
		o.logger.Debug("already in place", logging.String("file", name))
	case ledger.StatusFailed:
		o.logger.Warn("move failed",
			logging.String("file", name),
			logging.String("reason", record.FailureReason),
		)
	}
	return record
}

func (o *Organizer) isLargeFile(path string) bool {
	threshold := o.cfg.Organize.LargeFileThresholdMB
	if threshold <= 0 {
		return false
	}
	info, err := o.fs.Stat(path)
	if err != nil {
		// Vanished or unreadable; the executor reports the real failure.
		return false
	}
	return info.Size() >= threshold*1024*1024
}
