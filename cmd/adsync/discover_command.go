package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "discover <package-id>",
		Short: "List the assets a sync would upload, without uploading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, err := ctx.runtime()
			if err != nil {
				return err
			}

			assets, err := rt.Discoverer.Discover(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(assets))
			for _, asset := range assets {
				rows = append(rows, []string{
					strconv.Itoa(asset.Variant),
					string(asset.Aspect),
					string(asset.Kind),
					asset.Name,
					formatSize(asset.Size),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Variant", "Aspect", "Kind", "Name", "Size"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight}))
			fmt.Fprintf(out, "%d asset(s) in package %s\n", len(assets), args[0])
			return nil
		},
	}
}
