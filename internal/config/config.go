package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir  string `toml:"log_dir"`
	DataDir string `toml:"data_dir"`
}

// Drive contains configuration for the asset store the creatives live in.
type Drive struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	RootFolderID   string `toml:"root_folder_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Meta contains configuration for the Meta Marketing API.
type Meta struct {
	BaseURL        string `toml:"base_url"`
	APIVersion     string `toml:"api_version"`
	AccessToken    string `toml:"access_token"`
	AdAccountID    string `toml:"ad_account_id"`
	PageID         string `toml:"page_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Sync contains configuration for the creative synchronization pipeline.
type Sync struct {
	RetryAttempts         int `toml:"retry_attempts"`
	RetryBaseDelaySeconds int `toml:"retry_base_delay_seconds"`
	RetryMaxDelaySeconds  int `toml:"retry_max_delay_seconds"`
	PacingSeconds         int `toml:"pacing_seconds"`
	DiscoveryTTLSeconds   int `toml:"discovery_ttl_seconds"`
}

// Cache contains configuration for the in-process TTL cache.
type Cache struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for adsync.
//
// Configuration sections by subsystem:
//   - Paths: log and data directories
//   - Drive: the cloud file store holding creative packages
//   - Meta: ad platform credentials and endpoints
//   - Sync: retry, pacing, and discovery cache settings
//   - Cache: default TTL for memoized remote reads
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Drive   Drive   `toml:"drive"`
	Meta    Meta    `toml:"meta"`
	Sync    Sync    `toml:"sync"`
	Cache   Cache   `toml:"cache"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/adsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. The boolean reports whether a
// file was found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Resolve returns the path Load would read and whether a file exists there,
// without parsing or validating anything.
func Resolve(path string) (string, bool, error) {
	return resolveConfigPath(path)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("adsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	c.Drive.BaseURL = strings.TrimRight(strings.TrimSpace(c.Drive.BaseURL), "/")
	c.Drive.Token = strings.TrimSpace(c.Drive.Token)
	c.Drive.RootFolderID = strings.TrimSpace(c.Drive.RootFolderID)
	c.Meta.BaseURL = strings.TrimRight(strings.TrimSpace(c.Meta.BaseURL), "/")
	c.Meta.APIVersion = strings.TrimSpace(c.Meta.APIVersion)
	c.Meta.AccessToken = strings.TrimSpace(c.Meta.AccessToken)
	c.Meta.AdAccountID = strings.TrimPrefix(strings.TrimSpace(c.Meta.AdAccountID), "act_")
	c.Meta.PageID = strings.TrimSpace(c.Meta.PageID)
	return nil
}

// EnsureDirectories creates the directories adsync writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.DataDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
