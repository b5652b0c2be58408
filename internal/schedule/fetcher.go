package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-service/internal/pagefetch"
	"github.com/preston-bernstein/nhl-schedule-service/internal/season"
	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

const (
	// DefaultBaseURL is the upstream schedule endpoint.
	DefaultBaseURL = "https://statsapi.web.nhl.com/api/v1/schedule"

	// PageType labels schedule pages for the page cache.
	PageType = "json_schedule"
)

var errMissingDates = errors.New("response has no dates array")

// Fetcher retrieves and parses schedule pages through a page fetcher.
type Fetcher struct {
	pages   pagefetch.Fetcher
	baseURL string
	logger  *slog.Logger
}

// NewFetcher builds a schedule fetcher. An empty baseURL uses DefaultBaseURL.
func NewFetcher(pages pagefetch.Fetcher, baseURL string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		pages:   pages,
		baseURL: normalizeBaseURL(baseURL),
		logger:  logger,
	}
}

// Request describes the page holding the schedule for r.
func (f *Fetcher) Request(r games.DateRange) pagefetch.Request {
	start, end := timeutil.FormatDate(r.Start), timeutil.FormatDate(r.End)
	sep := "?"
	if strings.Contains(f.baseURL, "?") {
		sep = "&"
	}
	return pagefetch.Request{
		URL:    f.baseURL + sep + "startDate=" + start + "&endDate=" + end,
		Name:   start + "_" + end,
		Type:   PageType,
		Season: season.Tag(r.Start),
	}
}

// FetchChunk fetches the schedule page for r and parses it without filtering.
func (f *Fetcher) FetchChunk(ctx context.Context, r games.DateRange) (Chunk, error) {
	req := f.Request(r)
	if f.pages == nil {
		return Chunk{}, &FetchError{Range: r, URL: req.URL, Err: pagefetch.ErrFetcherUnavailable}
	}

	logger := logging.FromContext(ctx, f.logger)
	logging.Debug(logger, "fetching schedule chunk", logging.FieldRange, r.String(), logging.FieldURL, req.URL)

	body, err := f.pages.Fetch(ctx, req)
	if err != nil {
		return Chunk{}, &FetchError{Range: r, URL: req.URL, Err: err}
	}

	days, err := parseSchedule(body)
	if err != nil {
		return Chunk{}, &ParseError{Range: r, Err: err}
	}
	logging.Debug(logger, "parsed schedule chunk", logging.FieldRange, r.String(), logging.FieldCount, len(days))
	return Chunk{Range: r, Days: days}, nil
}

func parseSchedule(body []byte) ([]Day, error) {
	var payload scheduleResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Dates == nil {
		return nil, errMissingDates
	}
	return *payload.Dates, nil
}

func normalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}
