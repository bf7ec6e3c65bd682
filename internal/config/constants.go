package config

import "time"

// Provider and schedule source names accepted by PROVIDER and SCHEDULE_SOURCE.
const (
	ProviderFixture     = "fixture"
	ProviderBalldontlie = "balldontlie"

	ScheduleSourceCDN     = "cdn"
	ScheduleSourceFixture = "fixture"
)

const (
	defaultPort = "4000"
	// Conservative default poll interval to respect upstream quotas.
	defaultPollInterval = 2 * time.Minute
	defaultProvider     = ProviderFixture

	defaultBdlBaseURL     = "https://api.balldontlie.io/v1"
	defaultBdlTimezone    = "America/New_York"
	defaultBdlMaxPages    = 100
	defaultBdlMinInterval = time.Second

	defaultMetricsPort = "9090"
	defaultServiceName = "nba-edge-service"

	defaultPriorCacheTTL = 24 * time.Hour

	defaultSnapshotSync      = true
	defaultSnapshotDir       = "data/snapshots"
	defaultSnapshotRetention = 14
	// Eastern hour for the daily refresh and prune.
	defaultSnapshotDailyHour = 2

	defaultCORSOrigin = "*"
)
