package config

// SnapshotConfig controls flat-file snapshots and the daily sync job.
type SnapshotConfig struct {
	Enabled       bool
	Dir           string
	RetentionDays int    // past days kept on disk
	DailyHour     int    // Eastern hour (0-23) for the daily refresh and prune
	AdminToken    string // guards the refresh endpoint; empty disables it
}

func loadSnapshots(e env) SnapshotConfig {
	return SnapshotConfig{
		Enabled:       e.SnapshotSync.or(defaultSnapshotSync),
		Dir:           orDefault(e.SnapshotDir, defaultSnapshotDir),
		RetentionDays: e.SnapshotRetention.or(defaultSnapshotRetention),
		DailyHour:     e.SnapshotHour.or(defaultSnapshotDailyHour),
		AdminToken:    orDefault(e.AdminToken, ""),
	}
}
