package snapshots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

const defaultDailyHour = 2

// Refresher reloads the canonical schedule.
type Refresher interface {
	Refresh(ctx context.Context) ([]schedule.Row, error)
}

// SyncConfig controls snapshot sync behavior. DailyHour is in the reference zone.
type SyncConfig struct {
	Enabled   bool
	DailyHour int
}

// Syncer refreshes the schedule and rewrites snapshots once at startup and daily after.
type Syncer struct {
	refresher Refresher
	writer    *Writer
	cfg       SyncConfig
	logger    *slog.Logger
	metrics   *metrics.Recorder
	scheduler gocron.Scheduler
}

// NewSyncer constructs a snapshot syncer.
func NewSyncer(refresher Refresher, writer *Writer, cfg SyncConfig, logger *slog.Logger, recorder *metrics.Recorder) *Syncer {
	if cfg.DailyHour < 0 || cfg.DailyHour > 23 {
		cfg.DailyHour = defaultDailyHour
	}
	return &Syncer{
		refresher: refresher,
		writer:    writer,
		cfg:       cfg,
		logger:    logger,
		metrics:   recorder,
	}
}

// Start performs an initial sync and schedules the daily job. It is a no-op when disabled.
func (s *Syncer) Start(ctx context.Context) error {
	if s == nil || !s.cfg.Enabled || s.writer == nil || s.refresher == nil {
		return nil
	}
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(timeutil.Eastern()))
	if err != nil {
		return fmt.Errorf("failed to create snapshot scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(s.cfg.DailyHour), 0, 0))),
		gocron.NewTask(func() {
			_, _ = s.SyncOnce(ctx)
		}),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to create daily snapshot job: %w", err)
	}
	s.scheduler = scheduler

	logging.Info(s.logger, "snapshot sync starting", "daily_hour", s.cfg.DailyHour, "dir", s.writer.BasePath())
	go func() {
		_, _ = s.SyncOnce(ctx)
	}()
	scheduler.Start()
	return nil
}

// Stop shuts the scheduler down.
func (s *Syncer) Stop() error {
	if s == nil || s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

// SyncOnce refreshes the schedule, writes a snapshot per day and prunes expired ones.
// It returns the number of files that changed.
func (s *Syncer) SyncOnce(ctx context.Context) (int, error) {
	if s == nil || s.writer == nil || s.refresher == nil {
		return 0, errors.New("snapshot sync not configured")
	}
	start := time.Now()
	rows, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.metrics.RecordSnapshotWrite(0, err)
		logging.Warn(s.logger, "snapshot sync refresh failed", "err", err)
		// Expired files still age out while the upstream is down.
		if pruneErr := s.writer.Prune(); pruneErr != nil {
			logging.Warn(s.logger, "snapshot prune failed", "err", pruneErr)
		}
		return 0, err
	}

	files, err := s.writer.WriteDays(schedule.GroupByDay(rows))
	s.metrics.RecordSnapshotWrite(files, err)
	if err != nil {
		logging.Warn(s.logger, "snapshot sync write failed", "err", err)
		return files, err
	}
	logging.Info(s.logger, "snapshots written",
		logging.FieldCount, files,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return files, nil
}
