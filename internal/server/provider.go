package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/nbacdn"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.Provider {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderBalldontlie:
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL:  cfg.Balldontlie.BaseURL,
			APIKey:   cfg.Balldontlie.APIKey,
			Timezone: cfg.Balldontlie.Timezone,
			MaxPages: cfg.Balldontlie.MaxPages,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

// selectScheduleSources returns the primary schedule source followed by the optional enrichment feed.
func selectScheduleSources(cfg config.Config) []namedSource {
	if cfg.Schedule.Source == config.ScheduleSourceFixture {
		return []namedSource{{name: config.ScheduleSourceFixture, source: fixture.New()}}
	}
	sources := []namedSource{{
		name:   config.ScheduleSourceCDN,
		source: nbacdn.NewClient(nbacdn.Config{URL: cfg.Schedule.URL}),
	}}
	if cfg.Schedule.EnrichmentURL != "" {
		sources = append(sources, namedSource{
			name:   "enrichment",
			source: nbacdn.NewClient(nbacdn.Config{URL: cfg.Schedule.EnrichmentURL}),
		})
	}
	return sources
}

type namedSource struct {
	name   string
	source providers.ScheduleProvider
}
