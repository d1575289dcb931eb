package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sortd/internal/config"
	"sortd/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded batches, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ledger.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			batches, err := store.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printHistory(cmd, cfg, batches)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of batches to show (0 = all)")
	return cmd
}

func printHistory(cmd *cobra.Command, cfg *config.Config, batches []*ledger.MoveBatch) {
	out := cmd.OutOrStdout()
	if len(batches) == 0 {
		fmt.Fprintln(out, "No batches recorded.")
		return
	}

	rows := make([][]string, 0, len(batches))
	for _, batch := range batches {
		counts := batch.CountByStatus()
		mode := "live"
		if batch.DryRun {
			mode = "dry-run"
		}
		state := "-"
		if batch.Reversed {
			state = "reversed"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", batch.ID),
			batch.CreatedAt.Local().Format(time.DateTime),
			mode,
			fmt.Sprintf("%d", len(batch.Records)),
			fmt.Sprintf("%d", counts[ledger.StatusMoved]),
			fmt.Sprintf("%d", counts[ledger.StatusFailed]),
			state,
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Batch", "Created", "Mode", "Records", "Moved", "Failed", "State"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "Ledger: %s\n", cfg.LedgerPath())
}
