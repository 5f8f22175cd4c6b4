package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"adsync/internal/api"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := api.OpenJournal(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()
			if runID != "" {
				run, err := store.GetRun(cmd.Context(), runID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Run %s package %s: %d succeeded, %d failed (%s)\n",
					run.ID, run.PackageID, run.Succeeded, run.Failed,
					run.StartedAt.Local().Format(time.RFC1123))
				rows := make([][]string, 0, len(run.Assets))
				for _, asset := range run.Assets {
					detail := asset.PlatformID
					if asset.Error != "" {
						detail = truncate(asset.Error, 60)
					}
					rows = append(rows, []string{
						strconv.Itoa(asset.Variant),
						asset.Aspect,
						asset.Kind,
						asset.Name,
						statusWord(asset.Success),
						detail,
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"Variant", "Aspect", "Kind", "Name", "Status", "Detail"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.PackageID,
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					strconv.Itoa(run.Succeeded),
					strconv.Itoa(run.Failed),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Run", "Package", "Started", "Succeeded", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-asset outcomes for one run id")
	return cmd
}
