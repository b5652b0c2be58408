package pagefetch

import "time"

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "nhl-schedule-service/1.0"
	maxErrorBody       = 512

	defaultRetryAttempts = 3
	defaultBackoff       = 500 * time.Millisecond
	maxBackoff           = 30 * time.Second

	defaultRatePerSecond = 2.0

	// Source names used in logs and metrics.
	SourceHTTP        = "http"
	SourceFSCache     = "fs_cache"
	SourceSQLiteCache = "sqlite_cache"
)
