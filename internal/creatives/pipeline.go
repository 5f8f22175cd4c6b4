package creatives

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"adsync/internal/logging"
	"adsync/internal/services"
)

// Pipeline runs batch synchronization of a package's assets.
type Pipeline struct {
	discoverer *Discoverer
	uploader   *Uploader
	pacing     time.Duration
	sleeper    func(time.Duration)
	logger     *slog.Logger
}

// NewPipeline assembles the pipeline. pacing is the delay inserted between
// successive asset uploads to respect the platform's burst limits.
func NewPipeline(discoverer *Discoverer, uploader *Uploader, pacing time.Duration, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		discoverer: discoverer,
		uploader:   uploader,
		pacing:     pacing,
		sleeper:    time.Sleep,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
	}
}

// WithSleeper overrides how pacing sleeps are performed (useful for tests).
func (p *Pipeline) WithSleeper(sleeper func(time.Duration)) *Pipeline {
	if sleeper != nil {
		p.sleeper = sleeper
	}
	return p
}

// Summary aggregates a batch outcome.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summarize counts successes and failures in a result set.
func Summarize(results []UploadResult) Summary {
	var s Summary
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// SyncPackage discovers the package's assets, optionally filters them by
// variant, and uploads them sequentially. One UploadResult is returned per
// filtered asset; per-asset failures never abort the batch. Once started, the
// run detaches from caller cancellation: assets in flight finish uploading
// whether or not anyone is still watching.
func (p *Pipeline) SyncPackage(ctx context.Context, packageID string, variants ...int) ([]UploadResult, error) {
	ctx = context.WithoutCancel(ctx)
	ctx = services.WithPackageID(ctx, packageID)
	log := logging.WithContext(ctx, p.logger)

	assets, err := p.discoverer.Discover(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if len(variants) > 0 {
		filtered := make([]Asset, 0, len(assets))
		for _, asset := range assets {
			if slices.Contains(variants, asset.Variant) {
				filtered = append(filtered, asset)
			}
		}
		if len(filtered) == 0 {
			return nil, services.Wrap(services.ErrNotFound, "pipeline", "filter",
				"no assets match the requested variants", nil)
		}
		assets = filtered
	}

	log.Info("starting package sync", logging.Int("asset_count", len(assets)))

	results := make([]UploadResult, 0, len(assets))
	for i, asset := range assets {
		if i > 0 && p.pacing > 0 {
			p.sleeper(p.pacing)
		}
		result := p.uploader.Upload(ctx, asset)
		if result.Err != nil {
			log.Warn("asset sync failed",
				logging.String("asset", asset.Label()),
				logging.Error(result.Err))
		}
		results = append(results, result)
	}

	summary := Summarize(results)
	log.Info("package sync finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed))
	return results, nil
}
