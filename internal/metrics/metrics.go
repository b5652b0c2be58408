package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	cacheHits       int
	cacheMisses     int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type scrapeStats struct {
	runs    int
	errors  int
	records int
}

// Recorder captures lightweight, in-memory metrics about page fetches and scrape runs.
// When built by Setup it also forwards to OpenTelemetry instruments.
type Recorder struct {
	mu      sync.Mutex
	sources map[string]*sourceStats
	scrapes map[string]*scrapeStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources: make(map[string]*sourceStats),
		scrapes: make(map[string]*scrapeStats),
		otel:    otel,
	}
}

// RecordFetchAttempt increments counters for a page fetch and stores the last observed latency.
func (r *Recorder) RecordFetchAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSource(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(source, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSource(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordCacheLookup tracks page cache hits and misses for a source.
func (r *Recorder) RecordCacheLookup(source string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSource(source)
	if hit {
		stats.cacheHits++
	} else {
		stats.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(source, hit)
	}
}

// RecordScrape tracks one schedule pipeline run and the number of records it produced.
func (r *Recorder) RecordScrape(operation string, duration time.Duration, records int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.scrapes[operation]
	if !ok {
		stats = &scrapeStats{}
		r.scrapes[operation] = stats
	}
	stats.runs++
	stats.records += records
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordScrape(operation, duration, records, err)
	}
}

// FetchCalls returns the total attempts recorded for a source.
func (r *Recorder) FetchCalls(source string) int {
	return r.Snapshot(source).Calls
}

// FetchErrors returns the total failed attempts recorded for a source.
func (r *Recorder) FetchErrors(source string) int {
	return r.Snapshot(source).Errors
}

// RateLimitHits returns the number of rate limit events seen for a source.
func (r *Recorder) RateLimitHits(source string) int {
	return r.Snapshot(source).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a source.
func (r *Recorder) LastRetryAfter(source string) time.Duration {
	return r.Snapshot(source).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a source.
func (r *Recorder) LastCallLatency(source string) time.Duration {
	return r.Snapshot(source).LastCallLatency
}

// Snapshot is a copy of the current stats for a source.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	CacheHits       int
	CacheMisses     int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		CacheHits:       stats.cacheHits,
		CacheMisses:     stats.cacheMisses,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ScrapeSnapshot is a copy of the current stats for a scrape operation.
type ScrapeSnapshot struct {
	Runs    int
	Errors  int
	Records int
}

func (r *Recorder) ScrapeSnapshot(operation string) ScrapeSnapshot {
	if r == nil {
		return ScrapeSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.scrapes[operation]
	if !ok || stats == nil {
		return ScrapeSnapshot{}
	}
	return ScrapeSnapshot{Runs: stats.runs, Errors: stats.errors, Records: stats.records}
}

// ensureSource must be called with r.mu held.
func (r *Recorder) ensureSource(source string) *sourceStats {
	stats, ok := r.sources[source]
	if !ok {
		stats = &sourceStats{}
		r.sources[source] = stats
	}
	return stats
}
