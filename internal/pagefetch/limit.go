package pagefetch

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nhl-schedule-service/internal/logging"
)

// rateLimitedFetcher spaces out calls to inner to respect upstream quotas.
type rateLimitedFetcher struct {
	next    Fetcher
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedFetcher returns a Fetcher that allows perSecond calls with the given burst.
// Calls block until the limiter admits them or ctx is done.
func NewRateLimitedFetcher(next Fetcher, perSecond float64, burst int, logger *slog.Logger) Fetcher {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimitedFetcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

func (f *rateLimitedFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if f == nil || f.next == nil {
		return nil, ErrFetcherUnavailable
	}
	if err := f.limiter.Wait(ctx); err != nil {
		logWithSource(ctx, f.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", logging.FieldURL, req.URL)
		return nil, err
	}
	logWithSource(ctx, f.logger, slog.LevelDebug, "rate-limited", "rate-limited page fetch", logging.FieldURL, req.URL)
	return f.next.Fetch(ctx, req)
}
