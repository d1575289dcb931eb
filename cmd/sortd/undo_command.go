package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortd/internal/config"
	"sortd/internal/fsys"
	"sortd/internal/ledger"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Reverse the most recent organize batch(es)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}
			return ctx.withLockedStore(func(cfg *config.Config, store *ledger.Store) error {
				logger, err := ctx.logger()
				if err != nil {
					return err
				}

				report, err := store.UndoLast(cmd.Context(), count, fsys.OS{}, logger)
				if err != nil {
					return err
				}
				printUndoReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of batches to reverse")
	return cmd
}

func printUndoReport(cmd *cobra.Command, report *ledger.UndoReport) {
	out := cmd.OutOrStdout()

	if len(report.Batches) == 0 {
		fmt.Fprintln(out, "Nothing to undo.")
		return
	}

	for _, batch := range report.Batches {
		state := "fully reversed"
		if !batch.FullyReversed {
			state = "partially reversed"
		}
		fmt.Fprintf(out, "Batch #%d: %s (%d restored", batch.BatchID, state, batch.Restored)
		if batch.Trivial > 0 {
			fmt.Fprintf(out, ", %d needed no action", batch.Trivial)
		}
		fmt.Fprintln(out, ")")

		for _, failure := range batch.Collisions {
			fmt.Fprintf(out, "  could not restore %s: %s (%s)\n",
				failure.SourcePath, failure.Reason, failure.Detail)
		}
	}

	if report.CollisionTotal() > 0 {
		fmt.Fprintln(out, "Clear the paths above and run undo again to finish.")
	}
}
