package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newInsightsCommand(ctx *commandContext) *cobra.Command {
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Read campaign, ad set, and ad performance data",
	}

	insightsCmd.AddCommand(newInsightsCampaignsCommand(ctx))
	insightsCmd.AddCommand(newInsightsAdSetsCommand(ctx))
	insightsCmd.AddCommand(newInsightsAdCommand(ctx))
	return insightsCmd
}

func newInsightsCampaignsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "campaigns",
		Short: "List campaigns in the configured ad account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, err := ctx.runtime()
			if err != nil {
				return err
			}
			campaigns, err := rt.Platform.ListCampaigns(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(campaigns))
			for _, campaign := range campaigns {
				rows = append(rows, []string{campaign.ID, campaign.Name, campaign.Status, campaign.Objective})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Name", "Status", "Objective"},
				rows,
				nil))
			return nil
		},
	}
}

func newInsightsAdSetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "adsets <campaign-id>",
		Short: "List ad sets in a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, err := ctx.runtime()
			if err != nil {
				return err
			}
			adSets, err := rt.Platform.ListAdSets(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(adSets))
			for _, adSet := range adSets {
				rows = append(rows, []string{adSet.ID, adSet.Name, adSet.Status})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Name", "Status"},
				rows,
				nil))
			return nil
		},
	}
}

func newInsightsAdCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "ad <ad-id>",
		Short: "Show daily performance metrics for an ad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, err := ctx.runtime()
			if err != nil {
				return err
			}
			until := time.Now()
			since := until.AddDate(0, 0, -days)
			insights, err := rt.Platform.AdInsights(cmd.Context(), args[0], since, until)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(insights))
			for _, insight := range insights {
				rows = append(rows, []string{
					insight.DateStart,
					insight.Impressions,
					insight.Clicks,
					insight.Spend,
					insight.CPM,
					insight.CTR,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Date", "Impressions", "Clicks", "Spend", "CPM", "CTR"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to include, counting back from today")
	return cmd
}
