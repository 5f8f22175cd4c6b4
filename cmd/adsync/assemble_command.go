package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"adsync/internal/api"
	"adsync/internal/assembly"
)

func newAssembleCommand(ctx *commandContext) *cobra.Command {
	var bodies []string
	var titles []string
	var link string
	var greeting string
	var prompts []string
	var variants []int
	var submit bool

	cmd := &cobra.Command{
		Use:   "assemble <package-id>",
		Short: "Sync a package and build its rotation creative spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(bodies) == 0 {
				return fmt.Errorf("at least one --body is required")
			}
			if len(titles) != len(bodies) {
				return fmt.Errorf("--body and --title must be given the same number of times (%d bodies, %d titles)", len(bodies), len(titles))
			}
			if link == "" {
				return fmt.Errorf("--link is required")
			}

			rt, _, err := ctx.runtime()
			if err != nil {
				return err
			}

			outcome, err := api.RunSync(cmd.Context(), rt, args[0], variants...)
			if err != nil {
				return err
			}
			if outcome.Summary.Succeeded == 0 {
				return fmt.Errorf("no assets uploaded; cannot assemble a creative")
			}

			copyVariants := make([]assembly.Copy, 0, len(bodies))
			for i := range bodies {
				copyVariants = append(copyVariants, assembly.Copy{
					Variant: i + 1,
					Body:    bodies[i],
					Title:   titles[i],
				})
			}

			creative, err := assembly.Assemble(assembly.Input{
				PackageName: args[0],
				Copy:        copyVariants,
				Media:       assembly.MediaFromResults(outcome.Results),
				Greeting:    greeting,
				Prompts:     prompts,
				LinkURL:     link,
				PageID:      rt.Platform.PageID(),
			})
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(creative, "", "  ")
			if err != nil {
				return fmt.Errorf("encode creative spec: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, string(encoded))

			if submit {
				creativeID, err := rt.Platform.CreateAdCreative(cmd.Context(), creative)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Created ad creative %s\n", creativeID)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&bodies, "body", nil, "Primary text variant (repeatable)")
	cmd.Flags().StringArrayVar(&titles, "title", nil, "Headline variant, paired with --body by position (repeatable)")
	cmd.Flags().StringVar(&link, "link", "", "Destination link URL")
	cmd.Flags().StringVar(&greeting, "greeting", "", "Messaging greeting text")
	cmd.Flags().StringArrayVar(&prompts, "prompt", nil, "Messaging ice-breaker prompt (repeatable)")
	cmd.Flags().IntSliceVar(&variants, "variant", nil, "Restrict the sync to specific variants (repeatable)")
	cmd.Flags().BoolVar(&submit, "submit", false, "Submit the assembled creative to the ad platform")
	return cmd
}
