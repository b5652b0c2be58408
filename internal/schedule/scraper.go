package schedule

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-service/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-service/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-service/internal/pagefetch"
)

// Operation names used in logs and metrics.
const (
	OpScrapeSchedule = "scrape_schedule"
	OpGetDates       = "get_dates"
)

// Config wires a Scraper to its collaborators. Only Pages is required.
type Config struct {
	Pages       pagefetch.Fetcher
	Teams       TeamResolver
	BaseURL     string
	ChunkDays   int
	Concurrency int
	Now         func() time.Time
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Scraper runs the chunk, fetch, normalize pipeline.
type Scraper struct {
	fetcher     *Fetcher
	teams       TeamResolver
	chunkDays   int
	concurrency int
	now         func() time.Time
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

// NewScraper constructs a Scraper with defaults filled in.
func NewScraper(cfg Config) *Scraper {
	s := &Scraper{
		fetcher:     NewFetcher(cfg.Pages, cfg.BaseURL, cfg.Logger),
		teams:       cfg.Teams,
		chunkDays:   cfg.ChunkDays,
		concurrency: cfg.Concurrency,
		now:         cfg.Now,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
	if s.teams == nil {
		s.teams = teams.NewResolver(nil)
	}
	if s.chunkDays <= 0 {
		s.chunkDays = DefaultChunkDays
	}
	if s.concurrency <= 0 {
		s.concurrency = 1
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ScrapeSchedule returns the games played between from and to, inclusive.
// By default only finished regular season and playoff games are returned;
// preseason adds preseason games and notOver adds games not yet final.
func (s *Scraper) ScrapeSchedule(ctx context.Context, from, to time.Time, preseason, notOver bool) ([]games.Record, error) {
	filter := Filter{IncludePreseason: preseason, IncludeUnfinished: notOver}
	return s.run(ctx, OpScrapeSchedule, func(ctx context.Context) ([]games.Record, error) {
		return s.scrape(ctx, from, to, filter)
	})
}

// GetDates returns the records for the given game ids. The scrape always
// includes preseason and unfinished games so any requested id can match.
// Ids must be 10-digit numbers; an empty set returns no records without fetching.
func (s *Scraper) GetDates(ctx context.Context, ids []string) ([]games.Record, error) {
	return s.run(ctx, OpGetDates, func(ctx context.Context) ([]games.Record, error) {
		if len(ids) == 0 {
			return []games.Record{}, nil
		}
		r, err := InferDateRange(ids, s.now())
		if err != nil {
			return nil, err
		}

		wanted := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			wanted[id] = struct{}{}
		}

		records, err := s.scrape(ctx, r.Start, r.End, Filter{IncludePreseason: true, IncludeUnfinished: true})
		if err != nil {
			return nil, err
		}
		out := make([]games.Record, 0, len(ids))
		for _, rec := range records {
			if _, ok := wanted[rec.ID()]; ok {
				out = append(out, rec)
			}
		}
		return out, nil
	})
}

// GetDatesByID is GetDates for numeric ids.
func (s *Scraper) GetDatesByID(ctx context.Context, ids []int64) ([]games.Record, error) {
	text := make([]string, len(ids))
	for i, id := range ids {
		text[i] = strconv.FormatInt(id, 10)
	}
	return s.GetDates(ctx, text)
}

func (s *Scraper) run(ctx context.Context, op string, fn func(context.Context) ([]games.Record, error)) ([]games.Record, error) {
	start := time.Now()
	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(logging.FieldRunID, uuid.NewString(), logging.FieldOperation, op)
		ctx = logging.WithContext(ctx, logger)
	}

	records, err := fn(ctx)
	elapsed := time.Since(start)
	s.metrics.RecordScrape(op, elapsed, len(records), err)
	if err != nil {
		logging.Error(logger, "schedule scrape failed", err, logging.FieldDurationMS, elapsed.Milliseconds())
		return nil, err
	}
	logging.Info(logger, "schedule scrape finished",
		logging.FieldCount, len(records),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return records, nil
}

func (s *Scraper) scrape(ctx context.Context, from, to time.Time, filter Filter) ([]games.Record, error) {
	ranges, err := ChunkDateRange(from, to, s.chunkDays)
	if err != nil {
		return nil, err
	}
	logging.Debug(logging.FromContext(ctx, s.logger), "scraping schedule",
		logging.FieldRange, games.NewDateRange(from, to).String(),
		logging.FieldChunks, len(ranges),
	)

	chunks, err := s.fetchChunks(ctx, ranges)
	if err != nil {
		return nil, err
	}
	return Normalize(chunks, filter, s.teams)
}

// fetchChunks fetches up to s.concurrency chunks at a time. Results keep the
// order of ranges; the first failure cancels the rest.
func (s *Scraper) fetchChunks(ctx context.Context, ranges []games.DateRange) ([]Chunk, error) {
	chunks := make([]Chunk, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, r := range ranges {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunk, err := s.fetcher.FetchChunk(gctx, r)
			if err != nil {
				return err
			}
			chunks[i] = chunk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chunks, nil
}
