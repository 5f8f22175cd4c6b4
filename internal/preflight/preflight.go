package preflight

import (
	"context"

	"adsync/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDrive(ctx, cfg),
		CheckPlatform(ctx, cfg),
	}
	return results
}
