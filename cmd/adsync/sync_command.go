package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adsync/internal/api"
	"adsync/internal/creatives"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var variants []int
	var preview bool

	cmd := &cobra.Command{
		Use:   "sync <package-id>",
		Short: "Upload a package's creative assets to the ad platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, err := ctx.runtime()
			if err != nil {
				return err
			}

			outcome, err := api.RunSync(cmd.Context(), rt, args[0], variants...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(outcome.Results))
			for _, result := range outcome.Results {
				detail := result.PlatformID()
				if result.Err != nil {
					detail = truncate(result.Err.Error(), 60)
				}
				rows = append(rows, []string{
					result.Asset.Label(),
					string(result.Asset.Kind),
					statusWord(result.Success),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Asset", "Kind", "Status", "Detail"},
				rows,
				nil))
			fmt.Fprintf(out, "Run %s: %d succeeded, %d failed\n",
				outcome.RunID, outcome.Summary.Succeeded, outcome.Summary.Failed)
			if preview {
				printPreviewURLs(cmd, rt, outcome.Results)
			}
			if outcome.Summary.Failed > 0 {
				return fmt.Errorf("%d asset(s) failed to sync", outcome.Summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&variants, "variant", nil, "Restrict the sync to specific variants (repeatable)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Resolve hosted preview URLs for the uploaded assets")
	return cmd
}

// printPreviewURLs renders hosted URLs for the successful uploads: the hosted
// image URL per hash, the preferred thumbnail per video. Lookup failures only
// leave the URL column empty; the sync itself already succeeded.
func printPreviewURLs(cmd *cobra.Command, rt *api.Runtime, results []creatives.UploadResult) {
	urls := make(map[string]string)
	videoIDs := make([]string, 0, len(results))
	for _, result := range results {
		switch {
		case result.ImageHash != "":
			if url, err := rt.Platform.ImageURL(cmd.Context(), result.ImageHash); err == nil {
				urls[result.ImageHash] = url
			}
		case result.VideoID != "":
			videoIDs = append(videoIDs, result.VideoID)
		}
	}
	for _, thumb := range rt.Platform.VideoThumbnails(cmd.Context(), videoIDs) {
		urls[thumb.VideoID] = thumb.URI
	}

	rows := make([][]string, 0, len(urls))
	for _, result := range results {
		if url, ok := urls[result.PlatformID()]; ok {
			rows = append(rows, []string{result.Asset.Label(), url})
		}
	}
	if len(rows) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, []string{"Asset", "Preview URL"}, rows, nil))
}
