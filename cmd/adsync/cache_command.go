package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the in-process read cache",
	}

	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [pattern]",
		Short: "Drop cached reads, optionally only keys containing a substring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, err := ctx.runtime()
			if err != nil {
				return err
			}
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			removed := rt.Cache.Invalidate(pattern)
			out := cmd.OutOrStdout()
			if pattern == "" {
				fmt.Fprintf(out, "Cleared %d cache entr%s\n", removed, pluralY(removed))
			} else {
				fmt.Fprintf(out, "Cleared %d cache entr%s matching %q\n", removed, pluralY(removed), pattern)
			}
			return nil
		},
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
