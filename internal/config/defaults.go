package config

const (
	defaultLogDir              = "~/.local/share/adsync/logs"
	defaultDataDir             = "~/.local/share/adsync/data"
	defaultDriveTimeout        = 60
	defaultMetaBaseURL         = "https://graph.facebook.com"
	defaultMetaAPIVersion      = "v21.0"
	defaultMetaTimeout         = 30
	defaultRetryAttempts       = 3
	defaultRetryBaseDelay      = 2
	defaultRetryMaxDelay       = 30
	defaultPacingSeconds       = 1
	defaultDiscoveryTTLSeconds = 60
	defaultCacheTTLSeconds     = 300
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			DataDir: defaultDataDir,
		},
		Drive: Drive{
			TimeoutSeconds: defaultDriveTimeout,
		},
		Meta: Meta{
			BaseURL:        defaultMetaBaseURL,
			APIVersion:     defaultMetaAPIVersion,
			TimeoutSeconds: defaultMetaTimeout,
		},
		Sync: Sync{
			RetryAttempts:         defaultRetryAttempts,
			RetryBaseDelaySeconds: defaultRetryBaseDelay,
			RetryMaxDelaySeconds:  defaultRetryMaxDelay,
			PacingSeconds:         defaultPacingSeconds,
			DiscoveryTTLSeconds:   defaultDiscoveryTTLSeconds,
		},
		Cache: Cache{
			TTLSeconds: defaultCacheTTLSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
