package logging

import (
	"context"
	"log/slog"

	"adsync/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldPackageID is the standardized structured logging key for creative package identifiers.
	FieldPackageID = "package_id"
	// FieldRunID is the standardized structured logging key for sync run identifiers.
	FieldRunID = "run_id"
	// FieldVariant is the standardized structured logging key for creative variant numbers.
	FieldVariant = "variant"
	// FieldAspect is the standardized structured logging key for creative aspect ratios.
	FieldAspect = "aspect"
	// FieldFileID is the standardized structured logging key for asset store file identifiers.
	FieldFileID = "file_id"
	// FieldEndpoint is the standardized structured logging key for remote endpoint paths.
	FieldEndpoint = "endpoint"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.PackageIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldPackageID, id))
	}
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
