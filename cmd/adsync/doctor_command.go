package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adsync/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, store reachability, and platform credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			out := cmd.OutOrStdout()
			failures := 0
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				if !result.Passed {
					failures++
				}
				rows = append(rows, []string{result.Name, statusWord(result.Passed), result.Detail})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Check", "Status", "Detail"},
				rows,
				nil))
			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
