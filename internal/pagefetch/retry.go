package pagefetch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nhl-schedule-service/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-service/internal/metrics"
)

// retryingFetcher wraps a Fetcher with exponential backoff.
type retryingFetcher struct {
	inner       Fetcher
	logger      *slog.Logger
	metrics     *metrics.Recorder
	source      string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingFetcher wraps inner with retries. If maxAttempts/base are <= 0, defaults are used.
// Rate limit responses wait for their Retry-After; client errors other than 429 are not retried.
func NewRetryingFetcher(inner Fetcher, logger *slog.Logger, recorder *metrics.Recorder, source string, maxAttempts int, base time.Duration) Fetcher {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	if source == "" {
		source = SourceHTTP
	}
	return &retryingFetcher{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		source:      source,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = base
			exp.MaxInterval = maxBackoff
			exp.MaxElapsedTime = 0
			return exp
		},
	}
}

func (r *retryingFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if r == nil || r.inner == nil {
		return nil, ErrFetcherUnavailable
	}

	var (
		body    []byte
		attempt int
	)
	policy := &retryAfterBackOff{
		next: backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)),
	}

	op := func() error {
		attempt++
		start := time.Now()
		out, err := r.inner.Fetch(ctx, req)
		r.metrics.RecordFetchAttempt(r.source, time.Since(start), err)
		policy.lastErr = err
		if err == nil {
			body = out
			return nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.source, rlErr.RetryAfter)
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		logWithSource(ctx, r.logger, slog.LevelWarn, r.source, "page fetch retry",
			logging.FieldAttempt, attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			logging.FieldURL, req.URL,
			"err", err,
		)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify); err != nil {
		logWithSource(ctx, r.logger, slog.LevelWarn, r.source, "page fetch failed",
			"attempts", attempt,
			logging.FieldURL, req.URL,
			"err", err,
		)
		return nil, err
	}
	return body, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.Temporary()
	}
	return true
}

// retryAfterBackOff lets an upstream Retry-After override the computed delay
// while still counting against the attempt budget of next.
type retryAfterBackOff struct {
	next    backoff.BackOff
	lastErr error
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	delay := b.next.NextBackOff()
	if delay == backoff.Stop {
		return backoff.Stop
	}
	if rlErr, ok := AsRateLimitError(b.lastErr); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	return delay
}

func (b *retryAfterBackOff) Reset() {
	b.lastErr = nil
	b.next.Reset()
}
