package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/teststubs"
)

func TestRateLimitedProviderFirstCallIsImmediate(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, time.Hour, nil)

	start := time.Now()
	if _, err := rl.FetchGames(context.Background(), "2024-01-01", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected first call without waiting, took %s", elapsed)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner provider called once, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 20*time.Millisecond, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := rl.FetchGameLog(context.Background(), GameQuery{Team: "BOS"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected calls spaced by interval, elapsed %s", elapsed)
	}
	if inner.LogCalls.Load() != 3 {
		t.Fatalf("expected 3 game log calls, got %d", inner.LogCalls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchGames(ctx, "2024-01-01", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderCancelWhileWaiting(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, time.Hour, nil)
	if _, err := rl.FetchGames(context.Background(), "", ""); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := rl.FetchGames(ctx, "", ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected only the first call to reach the provider, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner Provider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	_, err := rl.FetchGames(context.Background(), "2024-01-01", "")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubProvider{}, 0, nil).(*rateLimitedProvider)
	if rl.interval != defaultMinInterval {
		t.Fatalf("expected default interval %s, got %s", defaultMinInterval, rl.interval)
	}
}
