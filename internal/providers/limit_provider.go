package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
)

const defaultMinInterval = time.Second

// rateLimitedProvider wraps a Provider and enforces a minimum interval between calls.
// The first call goes through immediately; later calls wait for their slot.
type rateLimitedProvider struct {
	next     Provider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	nextAllowed time.Time
}

// NewRateLimitedProvider returns a Provider that spaces calls at least interval apart.
// Calls block until their slot arrives or the context ends.
func NewRateLimitedProvider(next Provider, interval time.Duration, logger *slog.Logger) Provider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch", slog.String("date", date))
	return p.next.FetchGames(ctx, date, tz)
}

func (p *rateLimitedProvider) FetchGameLog(ctx context.Context, q GameQuery) ([]games.Game, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited game log fetch", slog.String("team", string(q.Team)))
	return p.next.FetchGameLog(ctx, q)
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	if p == nil || p.next == nil {
		var logger *slog.Logger
		if p != nil {
			logger = p.logger
		}
		logWithProvider(ctx, logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	now := p.now()
	slot := p.nextAllowed
	if slot.Before(now) {
		slot = now
	}
	p.nextAllowed = slot.Add(p.interval)
	p.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled")
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
