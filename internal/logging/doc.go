// Package logging builds the slog loggers used across adsync and provides
// helpers for standardized structured fields.
package logging
