// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	PollInterval    time.Duration
	Provider        string
	Balldontlie     BalldontlieConfig
	Schedule        ScheduleConfig
	Metrics         MetricsConfig
	Cache           CacheConfig
	Snapshots       SnapshotConfig
	Log             LogConfig
	CORSOrigins     []string
	ModelParamsFile string
}

// ScheduleConfig selects where the league schedule comes from.
type ScheduleConfig struct {
	Source        string
	URL           string
	EnrichmentURL string
}

// CacheConfig selects the prior-estimate cache backend.
type CacheConfig struct {
	RedisURL string
	PriorTTL time.Duration
}

// LogConfig controls the log handler.
type LogConfig struct {
	Level  string
	Format string
}

// env mirrors the variables the service reads. Numeric and boolean fields use decoders that
// swallow bad input so that Load can substitute defaults instead of failing startup.
type env struct {
	Port         string           `envconfig:"PORT"`
	PollInterval positiveDuration `envconfig:"POLL_INTERVAL"`
	Provider     string           `envconfig:"PROVIDER"`

	BdlBaseURL     string           `envconfig:"BALLDONTLIE_BASE_URL"`
	BdlAPIKey      string           `envconfig:"BALLDONTLIE_API_KEY"`
	BdlTimezone    string           `envconfig:"BALLDONTLIE_TIMEZONE"`
	BdlMaxPages    positiveInt      `envconfig:"BALLDONTLIE_MAX_PAGES"`
	BdlMinInterval positiveDuration `envconfig:"BALLDONTLIE_MIN_INTERVAL"`

	ScheduleSource        string `envconfig:"SCHEDULE_SOURCE"`
	ScheduleURL           string `envconfig:"SCHEDULE_URL"`
	ScheduleEnrichmentURL string `envconfig:"SCHEDULE_ENRICHMENT_URL"`

	MetricsEnabled optionalBool `envconfig:"METRICS_ENABLED"`
	MetricsPort    string       `envconfig:"METRICS_PORT"`
	OtelEndpoint   string       `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelService    string       `envconfig:"OTEL_SERVICE_NAME"`
	OtelInsecure   optionalBool `envconfig:"OTEL_EXPORTER_OTLP_INSECURE"`

	RedisURL      string           `envconfig:"REDIS_URL"`
	PriorCacheTTL positiveDuration `envconfig:"PRIOR_CACHE_TTL"`

	SnapshotSync      optionalBool `envconfig:"SNAPSHOT_SYNC_ENABLED"`
	SnapshotDir       string       `envconfig:"SNAPSHOT_DIR"`
	SnapshotRetention positiveInt  `envconfig:"SNAPSHOT_RETENTION_DAYS"`
	SnapshotHour      hourOfDay    `envconfig:"SNAPSHOT_DAILY_HOUR"`
	AdminToken        string       `envconfig:"ADMIN_TOKEN"`

	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogFormat string `envconfig:"LOG_FORMAT"`

	CORSOrigins     []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	ModelParamsFile string   `envconfig:"MODEL_PARAMS_FILE"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	provider := strings.ToLower(orDefault(e.Provider, defaultProvider))
	return Config{
		Port:         orDefault(e.Port, defaultPort),
		PollInterval: e.PollInterval.or(defaultPollInterval),
		Provider:     provider,
		Balldontlie:  loadBalldontlie(e),
		Schedule: ScheduleConfig{
			Source:        scheduleSource(e.ScheduleSource, provider),
			URL:           strings.TrimSpace(e.ScheduleURL),
			EnrichmentURL: strings.TrimSpace(e.ScheduleEnrichmentURL),
		},
		Metrics: loadMetrics(e),
		Cache: CacheConfig{
			RedisURL: strings.TrimSpace(e.RedisURL),
			PriorTTL: e.PriorCacheTTL.or(defaultPriorCacheTTL),
		},
		Snapshots: loadSnapshots(e),
		Log: LogConfig{
			Level:  strings.TrimSpace(e.LogLevel),
			Format: strings.TrimSpace(e.LogFormat),
		},
		CORSOrigins:     corsOrigins(e.CORSOrigins),
		ModelParamsFile: strings.TrimSpace(e.ModelParamsFile),
	}, nil
}

// scheduleSource follows the game provider when SCHEDULE_SOURCE is unset, so that a fully
// offline setup needs only PROVIDER=fixture.
func scheduleSource(raw, provider string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ScheduleSourceCDN:
		return ScheduleSourceCDN
	case ScheduleSourceFixture:
		return ScheduleSourceFixture
	}
	if provider == ProviderFixture {
		return ScheduleSourceFixture
	}
	return ScheduleSourceCDN
}

func corsOrigins(raw []string) []string {
	origins := make([]string, 0, len(raw))
	for _, o := range raw {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{defaultCORSOrigin}
	}
	return origins
}

func orDefault(val, def string) string {
	if v := strings.TrimSpace(val); v != "" {
		return v
	}
	return def
}
