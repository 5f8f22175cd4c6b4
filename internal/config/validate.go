package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDrive(); err != nil {
		return err
	}
	if err := c.validateMeta(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDrive() error {
	if c.Drive.BaseURL == "" {
		return errors.New("drive.base_url must be set")
	}
	if c.Drive.Token == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/adsync/config.toml"
		}
		return fmt.Errorf("drive.token is required. Edit %s (create with 'adsync config init')", defaultPath)
	}
	if c.Drive.RootFolderID == "" {
		return errors.New("drive.root_folder_id must be set")
	}
	if c.Drive.TimeoutSeconds <= 0 {
		return errors.New("drive.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateMeta() error {
	if c.Meta.AccessToken == "" {
		return errors.New("meta.access_token must be set")
	}
	if c.Meta.AdAccountID == "" {
		return errors.New("meta.ad_account_id must be set")
	}
	if !strings.HasPrefix(c.Meta.APIVersion, "v") {
		return fmt.Errorf("meta.api_version %q must look like v21.0", c.Meta.APIVersion)
	}
	if c.Meta.TimeoutSeconds <= 0 {
		return errors.New("meta.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSync() error {
	return ensurePositiveMap(map[string]int{
		"sync.retry_attempts":           c.Sync.RetryAttempts,
		"sync.retry_base_delay_seconds": c.Sync.RetryBaseDelaySeconds,
		"sync.retry_max_delay_seconds":  c.Sync.RetryMaxDelaySeconds,
		"sync.pacing_seconds":           c.Sync.PacingSeconds,
		"sync.discovery_ttl_seconds":    c.Sync.DiscoveryTTLSeconds,
	})
}

func (c *Config) validateCache() error {
	if c.Cache.TTLSeconds <= 0 {
		return errors.New("cache.ttl_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
