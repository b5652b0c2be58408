package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldSource     = "source"
	FieldRunID      = "run_id"
	FieldOperation  = "operation"
	FieldRange      = "range"
	FieldURL        = "url"
	FieldPage       = "page"
	FieldSeason     = "season"
	FieldAttempt    = "attempt"
	FieldCount      = "count"
	FieldChunks     = "chunks"
	FieldDurationMS = "duration_ms"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
