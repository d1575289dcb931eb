package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortd/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories and ledger health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.Check(cfg)
			printChecks(cmd, results)
			if !preflight.Passed(results) {
				return fmt.Errorf("status checks failed")
			}
			return nil
		},
	}
}

func printChecks(cmd *cobra.Command, results []preflight.Result) {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		state := "FAIL"
		if result.Passed {
			state = "ok"
		}
		rows = append(rows, []string{result.Name, state, result.Detail})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Check", "State", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}
