// Package config loads, validates, and defaults the adsync TOML configuration.
package config
