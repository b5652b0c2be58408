package pagefetch

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nhl-schedule-service/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-service/internal/metrics"
)

// Cache stores page bodies keyed by request type, season and name.
type Cache interface {
	Name() string
	Get(ctx context.Context, req Request) ([]byte, bool, error)
	Put(ctx context.Context, req Request, body []byte) error
}

// cachingFetcher serves pages from a Cache and fills it on misses.
type cachingFetcher struct {
	next     Fetcher
	cache    Cache
	rescrape bool
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewCachingFetcher wraps next with cache. With rescrape set, cached copies are
// ignored but fresh pages are still written back.
func NewCachingFetcher(next Fetcher, cache Cache, rescrape bool, logger *slog.Logger, recorder *metrics.Recorder) Fetcher {
	if cache == nil {
		return next
	}
	return &cachingFetcher{
		next:     next,
		cache:    cache,
		rescrape: rescrape,
		logger:   logger,
		metrics:  recorder,
	}
}

func (f *cachingFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if f.next == nil {
		return nil, ErrFetcherUnavailable
	}
	if !req.Cacheable() {
		return f.next.Fetch(ctx, req)
	}

	source := f.cache.Name()
	if !f.rescrape {
		body, ok, err := f.cache.Get(ctx, req)
		if err != nil {
			logWithSource(ctx, f.logger, slog.LevelWarn, source, "page cache read failed",
				logging.FieldPage, req.Name, "err", err)
		}
		f.metrics.RecordCacheLookup(source, ok)
		if ok {
			logWithSource(ctx, f.logger, slog.LevelDebug, source, "page cache hit",
				logging.FieldPage, req.Name, logging.FieldSeason, req.Season)
			return body, nil
		}
	}

	body, err := f.next.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Put(ctx, req, body); err != nil {
		logWithSource(ctx, f.logger, slog.LevelWarn, source, "page cache write failed",
			logging.FieldPage, req.Name, "err", err)
	}
	return body, nil
}
