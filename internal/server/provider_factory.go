package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

// providerFactory assembles upstream providers with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.Provider {
	base := selectProvider(cfg, f.logger)
	if cfg.Provider == config.ProviderBalldontlie {
		base = providers.NewRateLimitedProvider(base, cfg.Balldontlie.MinInterval, f.logger)
	}
	return f.wrap(cfg, base)
}

// wrap adds retries to an already-built game provider.
func (f providerFactory) wrap(cfg config.Config, p providers.Provider) providers.Provider {
	return providers.NewRetryingProvider(p, f.logger, f.metrics, normalizeProviderName(cfg.Provider, p), 0, 0)
}

func (f providerFactory) buildSchedule(cfg config.Config) []providers.ScheduleProvider {
	named := selectScheduleSources(cfg)
	out := make([]providers.ScheduleProvider, 0, len(named))
	for _, n := range named {
		out = append(out, providers.NewRetryingScheduleProvider(n.source, f.logger, f.metrics, n.name, 0, 0))
	}
	return out
}

// wrapSchedule adds retries to injected schedule sources.
func (f providerFactory) wrapSchedule(sources []providers.ScheduleProvider) []providers.ScheduleProvider {
	out := make([]providers.ScheduleProvider, 0, len(sources))
	for _, s := range sources {
		out = append(out, providers.NewRetryingScheduleProvider(s, f.logger, f.metrics, normalizeProviderName("", s), 0, 0))
	}
	return out
}
