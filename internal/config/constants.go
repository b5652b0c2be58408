package config

import "time"

const (
	dotEnvFile = ".env"

	envScheduleBaseURL   = "SCHEDULE_BASE_URL"
	envScheduleChunkDays = "SCHEDULE_CHUNK_DAYS"
	envConcurrency       = "SCHEDULE_CONCURRENCY"
	envFetchTimeout      = "FETCH_TIMEOUT"
	envFetchUserAgent    = "FETCH_USER_AGENT"
	envFetchMaxAttempts  = "FETCH_MAX_ATTEMPTS"
	envFetchBackoff      = "FETCH_BACKOFF"
	envFetchRate         = "FETCH_RATE_PER_SECOND"
	envFetchBurst        = "FETCH_BURST"
	envCacheDir          = "PAGE_CACHE_DIR"
	envCacheDB           = "PAGE_CACHE_DB"
	envCacheRescrape     = "PAGE_CACHE_RESCRAPE"
	envTeamsFile         = "TEAM_ALIASES_FILE"
	envMetricsOn         = "METRICS_ENABLED"
	envMetricsAddr       = "METRICS_ADDR"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel          = "LOG_LEVEL"
	envLogFormat         = "LOG_FORMAT"

	defaultScheduleBaseURL = "https://statsapi.web.nhl.com/api/v1/schedule"
	// The schedule endpoint misbehaves on ranges much wider than this.
	defaultChunkDays   = 100
	defaultConcurrency = 1

	defaultFetchTimeout     = 30 * time.Second
	defaultFetchUserAgent   = "nhl-schedule-service/1.0"
	defaultFetchMaxAttempts = 3
	defaultFetchBackoff     = 500 * time.Millisecond
	// Two requests a second keeps a multi-season backfill well under upstream limits.
	defaultFetchRate  = 2.0
	defaultFetchBurst = 1

	defaultMetricsAddr = ":9090"
	defaultServiceName = "nhl-schedule-service"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)
