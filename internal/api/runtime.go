package api

import (
	"errors"
	"log/slog"
	"time"

	"adsync/internal/backoff"
	"adsync/internal/cache"
	"adsync/internal/config"
	"adsync/internal/creatives"
	"adsync/internal/journal"
	"adsync/internal/services"
	"adsync/internal/services/drive"
	"adsync/internal/services/metaads"
)

// Runtime bundles the clients and pipeline a CLI command needs. Build one per
// invocation with NewRuntime.
type Runtime struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cache      *cache.Cache
	Drive      *drive.Client
	Platform   *metaads.Client
	Discoverer *creatives.Discoverer
	Pipeline   *creatives.Pipeline
}

// NewRuntime constructs the shared runtime from config. All components log
// through the given logger.
func NewRuntime(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("runtime requires config")
	}
	if logger == nil {
		return nil, errors.New("runtime requires logger")
	}

	store := cache.New(time.Duration(cfg.Cache.TTLSeconds)*time.Second, logger)

	driveClient, err := drive.New(cfg.Drive.BaseURL, cfg.Drive.Token, time.Duration(cfg.Drive.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runtime", "build drive client", "asset store configuration invalid", err)
	}

	platform, err := metaads.New(metaads.Config{
		BaseURL:        cfg.Meta.BaseURL,
		APIVersion:     cfg.Meta.APIVersion,
		AccessToken:    cfg.Meta.AccessToken,
		AdAccountID:    cfg.Meta.AdAccountID,
		PageID:         cfg.Meta.PageID,
		TimeoutSeconds: cfg.Meta.TimeoutSeconds,
	}, logger, metaads.WithCache(store))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runtime", "build platform client", "ad platform configuration invalid", err)
	}

	discoverer := creatives.NewDiscoverer(driveClient, cfg.Drive.RootFolderID, store, logger).
		WithTTL(time.Duration(cfg.Sync.DiscoveryTTLSeconds) * time.Second)

	retry := backoff.Policy{
		MaxAttempts: cfg.Sync.RetryAttempts,
		BaseDelay:   time.Duration(cfg.Sync.RetryBaseDelaySeconds) * time.Second,
		Multiplier:  2,
		MaxDelay:    time.Duration(cfg.Sync.RetryMaxDelaySeconds) * time.Second,
	}
	uploader := creatives.NewUploader(driveClient, platform, retry, logger)
	pipeline := creatives.NewPipeline(discoverer, uploader, time.Duration(cfg.Sync.PacingSeconds)*time.Second, logger)

	return &Runtime{
		Config:     cfg,
		Logger:     logger,
		Cache:      store,
		Drive:      driveClient,
		Platform:   platform,
		Discoverer: discoverer,
		Pipeline:   pipeline,
	}, nil
}

// OpenJournal opens the run journal under the configured data directory.
func OpenJournal(cfg *config.Config) (*journal.Store, error) {
	return journal.Open(cfg)
}
