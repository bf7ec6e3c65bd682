package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retrier runs provider calls with exponential backoff and records each attempt.
type retrier struct {
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

func newRetrier(logger *slog.Logger, rec *metrics.Recorder, providerName string, maxAttempts int, base time.Duration) retrier {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return retrier{
		logger:       logger,
		metrics:      rec,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = base
			bo.RandomizationFactor = 0.5
			bo.Multiplier = 2
			bo.MaxInterval = maxBackoff
			bo.MaxElapsedTime = 0
			bo.Reset()
			return bo
		},
	}
}

// retryCall invokes fn until it succeeds, returns a permanent error, or attempts run out.
func retryCall[T any](ctx context.Context, r retrier, op string, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	bo := r.newBackOff()

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		out, err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !retryable(err) || attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, bo)
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed", "op", op, "err", lastErr)
	return zero, lastErr
}

// computeDelay honours an upstream Retry-After and otherwise takes the next backoff step.
func (r retrier) computeDelay(err error, bo backoff.BackOff) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	delay := bo.NextBackOff()
	if delay == backoff.Stop || delay < 0 {
		return maxBackoff
	}
	return delay
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

// retryingProvider wraps a Provider with retry/backoff behavior.
type retryingProvider struct {
	inner Provider
	retrier
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner Provider, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxAttempts int, base time.Duration) Provider {
	return &retryingProvider{
		inner:   inner,
		retrier: newRetrier(logger, rec, providerName, maxAttempts, base),
	}
}

func (p *retryingProvider) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return retryCall(ctx, p.retrier, "games", func(ctx context.Context) ([]games.Game, error) {
		return p.inner.FetchGames(ctx, date, tz)
	})
}

func (p *retryingProvider) FetchGameLog(ctx context.Context, q GameQuery) ([]games.Game, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return retryCall(ctx, p.retrier, "game_log", func(ctx context.Context) ([]games.Game, error) {
		return p.inner.FetchGameLog(ctx, q)
	})
}

type retryingScheduleProvider struct {
	inner ScheduleProvider
	retrier
}

// NewRetryingScheduleProvider wraps a ScheduleProvider with the same retry policy.
func NewRetryingScheduleProvider(inner ScheduleProvider, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxAttempts int, base time.Duration) ScheduleProvider {
	return &retryingScheduleProvider{
		inner:   inner,
		retrier: newRetrier(logger, rec, providerName, maxAttempts, base),
	}
}

func (p *retryingScheduleProvider) FetchSchedule(ctx context.Context) ([]byte, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return retryCall(ctx, p.retrier, "schedule", p.inner.FetchSchedule)
}
