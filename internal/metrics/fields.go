package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrSource    = "source"
	AttrOperation = "operation"
	AttrCacheHit  = "cache_hit"
	AttrOutcome   = "outcome"
)
