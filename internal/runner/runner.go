// Package runner wires configuration, telemetry and the page fetcher chain
// into a schedule scraper and writes its results.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/config"
	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-service/internal/pagefetch"
	"github.com/preston-bernstein/nhl-schedule-service/internal/schedule"
)

// Runner owns a configured scraper and the resources behind it.
type Runner struct {
	logger        *slog.Logger
	metrics       *metrics.Recorder
	scraper       *schedule.Scraper
	metricsServer httpServer
	metricsStop   func(context.Context) error
	cache         io.Closer
}

// Options overrides parts of the default wiring.
type Options struct {
	// Pages replaces the HTTP fetcher at the bottom of the chain.
	Pages pagefetch.Fetcher
	Now   func() time.Time
}

// New builds a Runner from cfg.
func New(cfg config.Config, logger *slog.Logger, opts Options) (*Runner, error) {
	recorder, metricsSrv, metricsStop := buildMetrics(cfg, logger)

	resolver, err := buildResolver(cfg.TeamsFile)
	if err != nil {
		return nil, err
	}

	pages, cache, err := newFetcherFactory(logger, recorder).build(cfg, opts.Pages)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}

	scraper := schedule.NewScraper(schedule.Config{
		Pages:       pages,
		Teams:       resolver,
		BaseURL:     cfg.Schedule.BaseURL,
		ChunkDays:   cfg.Schedule.ChunkDays,
		Concurrency: cfg.Schedule.Concurrency,
		Now:         opts.Now,
		Logger:      logger,
		Metrics:     recorder,
	})

	return &Runner{
		logger:        logger,
		metrics:       recorder,
		scraper:       scraper,
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
		cache:         cache,
	}, nil
}

func buildResolver(path string) (*teams.Resolver, error) {
	if path == "" {
		return teams.NewResolver(nil), nil
	}
	overrides, err := teams.LoadAliases(path)
	if err != nil {
		return nil, err
	}
	return teams.NewResolver(overrides), nil
}

// Start launches the metrics server when one is configured.
func (r *Runner) Start() {
	if r.metricsServer == nil {
		return
	}
	launchServer("metrics", r.metricsServer, r.logger)
}

// Metrics exposes the recorder (useful for tests).
func (r *Runner) Metrics() *metrics.Recorder {
	return r.metrics
}

// Range scrapes [from, to] and writes the records as JSON lines to w.
func (r *Runner) Range(ctx context.Context, from, to time.Time, preseason, unfinished bool, w io.Writer) error {
	records, err := r.scraper.ScrapeSchedule(ctx, from, to, preseason, unfinished)
	if err != nil {
		return err
	}
	return writeRecords(w, records)
}

// Games looks up the given game ids and writes the records as JSON lines to w.
func (r *Runner) Games(ctx context.Context, ids []string, w io.Writer) error {
	records, err := r.scraper.GetDates(ctx, ids)
	if err != nil {
		return err
	}
	return writeRecords(w, records)
}

func writeRecords(w io.Writer, records []games.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes telemetry and releases the page cache.
func (r *Runner) Close() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if r.metricsStop != nil {
		if err := r.metricsStop(shutdownCtx); err != nil && r.logger != nil {
			r.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if r.metricsServer != nil {
		if err := r.metricsServer.Shutdown(shutdownCtx); err != nil && r.logger != nil {
			r.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}
	if r.cache != nil {
		if err := r.cache.Close(); err != nil && r.logger != nil {
			r.logger.Warn("page cache close failed", "error", err)
		}
	}
}
