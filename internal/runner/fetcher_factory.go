package runner

import (
	"io"
	"log/slog"

	"github.com/preston-bernstein/nhl-schedule-service/internal/config"
	"github.com/preston-bernstein/nhl-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-service/internal/pagefetch"
)

// fetcherFactory assembles the page fetcher chain:
// HTTP, then rate limit, then retry, then the optional page cache.
type fetcherFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newFetcherFactory(logger *slog.Logger, recorder *metrics.Recorder) fetcherFactory {
	return fetcherFactory{logger: logger, metrics: recorder}
}

// build returns the chain and a closer for any resources it holds.
func (f fetcherFactory) build(cfg config.Config, base pagefetch.Fetcher) (pagefetch.Fetcher, io.Closer, error) {
	if base == nil {
		base = pagefetch.NewHTTPFetcher(pagefetch.HTTPConfig{
			Timeout:   cfg.Fetcher.Timeout,
			UserAgent: cfg.Fetcher.UserAgent,
		})
	}
	limited := pagefetch.NewRateLimitedFetcher(base, cfg.Fetcher.RatePerSecond, cfg.Fetcher.Burst, f.logger)
	retrying := pagefetch.NewRetryingFetcher(limited, f.logger, f.metrics, pagefetch.SourceHTTP, cfg.Fetcher.MaxAttempts, cfg.Fetcher.Backoff)

	cache, closer, err := f.buildCache(cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	return pagefetch.NewCachingFetcher(retrying, cache, cfg.Cache.Rescrape, f.logger, f.metrics), closer, nil
}

func (f fetcherFactory) buildCache(cfg config.CacheConfig) (pagefetch.Cache, io.Closer, error) {
	switch {
	case cfg.DBPath != "":
		db, err := pagefetch.OpenSQLiteCache(cfg.DBPath, f.logger)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case cfg.Dir != "":
		return pagefetch.NewFSCache(cfg.Dir), nopCloser{}, nil
	default:
		return nil, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
