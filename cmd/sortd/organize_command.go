package main

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sortd/internal/config"
	"sortd/internal/ledger"
	"sortd/internal/logging"
	"sortd/internal/organize"
	"sortd/internal/preflight"
	"sortd/internal/scan"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var limit int

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Sort watched-directory files into category folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLockedStore(func(cfg *config.Config, store *ledger.Store) error {
				if results := preflight.Check(cfg); !preflight.Passed(results) {
					printChecks(cmd, results)
					return fmt.Errorf("preflight checks failed")
				}

				logger, err := ctx.logger()
				if err != nil {
					return err
				}
				runID := uuid.NewString()
				logger = logger.With(logging.String("run_id", runID))

				files, err := scan.Files(cfg.Paths.WatchDir, scan.Options{
					Ignore:        cfg.Organize.Ignore,
					IncludeHidden: cfg.Organize.IncludeHidden,
				})
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to organize.")
					return nil
				}

				org := organize.New(cfg, store, logger)
				batch, err := org.Run(cmd.Context(), files, organize.Options{
					DryRun: dryRun,
					Limit:  limit,
					RunID:  runID,
				})
				if err != nil {
					return err
				}

				printBatchSummary(cmd, batch)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview moves without touching the filesystem")
	cmd.Flags().IntVar(&limit, "limit", 0, "Process at most this many files (0 = no limit)")
	return cmd
}

func printBatchSummary(cmd *cobra.Command, batch *ledger.MoveBatch) {
	out := cmd.OutOrStdout()

	if batch.DryRun {
		fmt.Fprintf(out, "Dry run: batch #%d, no files were moved.\n", batch.ID)
	} else {
		fmt.Fprintf(out, "Batch #%d complete.\n", batch.ID)
	}

	summary := batch.CategorySummary()
	labels := make([]string, 0, len(summary))
	for label := range summary {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []string{label, fmt.Sprintf("%d", summary[label])})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Category", "Files"},
			rows,
			[]columnAlignment{alignLeft, alignRight},
		))
	}

	counts := batch.CountByStatus()
	if skipped := counts[ledger.StatusSkipped]; skipped > 0 {
		fmt.Fprintf(out, "%d already in place.\n", skipped)
	}
	if failed := counts[ledger.StatusFailed]; failed > 0 {
		fmt.Fprintf(out, "%d failed:\n", failed)
		for _, record := range batch.Records {
			if record.Status == ledger.StatusFailed {
				fmt.Fprintf(out, "  %s (%s)\n", record.SourcePath, record.FailureReason)
			}
		}
	}
}
