package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-edge-service/internal/config"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
	syncer *snapshots.Syncer
}

// buildSnapshots wires the on-disk snapshot store, writer and daily syncer. The syncer is
// started by Run so construction has no side effects.
func buildSnapshots(cfg config.Config, refresher snapshots.Refresher, logger *slog.Logger, recorder *metrics.Recorder) snapshotComponents {
	basePath := cfg.Snapshots.Dir
	writer := snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays)
	syncer := snapshots.NewSyncer(refresher, writer, snapshots.SyncConfig{
		Enabled:   cfg.Snapshots.Enabled,
		DailyHour: cfg.Snapshots.DailyHour,
	}, logger, recorder)

	return snapshotComponents{
		store:  snapshots.NewFSStore(basePath),
		writer: writer,
		syncer: syncer,
	}
}

// pollerWriter returns the writer the poller uses for today's snapshot, or nil when sync is off.
func (c snapshotComponents) pollerWriter(cfg config.Config) poller.SnapshotWriter {
	if !cfg.Snapshots.Enabled || c.writer == nil {
		return nil
	}
	return c.writer
}
