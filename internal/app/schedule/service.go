// Package schedule coordinates fetching, normalizing and serving canonical schedule rows.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	domainschedule "github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/normalize"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// DefaultUpcomingLimit caps Upcoming when the caller passes no limit.
const DefaultUpcomingLimit = 5

// ErrUnrecognizedPayload is returned when the primary source yields no known payload shape.
var ErrUnrecognizedPayload = errors.New("schedule payload not recognized")

// Store defines the contract for persisting and retrieving schedule rows.
type Store interface {
	Rows() []domainschedule.Row
	RowsForDate(date string) []domainschedule.Row
	RowsForTeam(code teams.Code) []domainschedule.Row
	SetRows(rows []domainschedule.Row)
}

// Service coordinates schedule operations using a Store. The first source is the primary
// schedule; later sources only enrich it.
type Service struct {
	store      Store
	normalizer *normalize.Normalizer
	sources    []providers.ScheduleProvider
	logger     *slog.Logger
	metrics    *metrics.Recorder

	refreshMu sync.Mutex

	resultsMu sync.RWMutex
	results   map[string][]games.Result
}

// NewService constructs a Service with the provided Store and schedule sources.
func NewService(store Store, normalizer *normalize.Normalizer, logger *slog.Logger, recorder *metrics.Recorder, sources ...providers.ScheduleProvider) *Service {
	if normalizer == nil {
		normalizer = normalize.New(nil, logger)
	}
	return &Service{
		store:      store,
		normalizer: normalizer,
		sources:    sources,
		logger:     logger,
		metrics:    recorder,
		results:    make(map[string][]games.Result),
	}
}

// Refresh fetches every source, merges enrichment into the primary rows and stores the
// result. Dates covered by the fresh primary payload replace stored rows; older stored
// dates are kept. A failing enrichment source is logged and skipped.
func (s *Service) Refresh(ctx context.Context) ([]domainschedule.Row, error) {
	if len(s.sources) == 0 {
		return nil, providers.ErrProviderUnavailable
	}
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	fresh, payload, err := s.load(ctx, 0)
	if err != nil {
		return nil, err
	}
	s.storeResults(s.normalizer.Results(payload))

	for i := 1; i < len(s.sources); i++ {
		rows, _, err := s.load(ctx, i)
		if err != nil {
			logging.Warn(s.logger, "schedule enrichment skipped", "source", i, "err", err)
			continue
		}
		var conflicts []normalize.Conflict
		fresh, conflicts = normalize.MergeRows(fresh, rows)
		for _, c := range conflicts {
			logging.Debug(s.logger, "schedule enrichment conflict",
				logging.FieldDate, c.Key.DateKey,
				logging.FieldTeam, string(c.Key.TeamCode),
				"field", c.Field,
				"primary", c.Primary,
				"enrichment", c.Enrichment,
			)
		}
	}

	merged := retainUncovered(s.store.Rows(), fresh)
	s.store.SetRows(merged)
	logging.Info(s.logger, "schedule refreshed",
		logging.FieldCount, len(merged),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return s.store.Rows(), nil
}

func (s *Service) load(ctx context.Context, i int) ([]domainschedule.Row, []byte, error) {
	payload, err := s.sources[i].FetchSchedule(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch schedule source %d: %w", i, err)
	}
	res := s.normalizer.Run(payload)
	s.metrics.RecordNormalize(string(res.Shape), len(res.Rows), res.Skipped, res.Dropped)
	if res.Shape == normalize.ShapeUnknown {
		return nil, nil, fmt.Errorf("schedule source %d: %w", i, ErrUnrecognizedPayload)
	}
	logging.Debug(s.logger, "schedule payload normalized",
		logging.FieldShape, string(res.Shape),
		logging.FieldCount, len(res.Rows),
		"skipped", res.Skipped,
		"dropped", res.Dropped,
	)
	return res.Rows, payload, nil
}

// storeResults replaces the final scores for every date the fresh payload reports on.
func (s *Service) storeResults(fresh []games.Result) {
	byDate := make(map[string][]games.Result)
	for _, r := range fresh {
		byDate[r.Date] = append(byDate[r.Date], r)
	}
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	for date, results := range byDate {
		s.results[date] = results
	}
}

// ResultsForDate returns the final scores the schedule feed reported for date.
func (s *Service) ResultsForDate(date string) []games.Result {
	s.resultsMu.RLock()
	defer s.resultsMu.RUnlock()
	out := make([]games.Result, len(s.results[date]))
	copy(out, s.results[date])
	return out
}

// retainUncovered keeps stored rows whose date the fresh rows do not cover.
func retainUncovered(stored, fresh []domainschedule.Row) []domainschedule.Row {
	covered := make(map[string]struct{}, len(fresh))
	for _, row := range fresh {
		covered[row.DateKey] = struct{}{}
	}
	out := make([]domainschedule.Row, 0, len(stored)+len(fresh))
	for _, row := range stored {
		if _, ok := covered[row.DateKey]; !ok {
			out = append(out, row)
		}
	}
	out = append(out, fresh...)
	domainschedule.SortRows(out)
	return out
}

// Rows returns every stored row in canonical order.
func (s *Service) Rows() []domainschedule.Row {
	return s.store.Rows()
}

// RowsForDate returns the rows for a YYYY-MM-DD date key.
func (s *Service) RowsForDate(date string) []domainschedule.Row {
	return s.store.RowsForDate(date)
}

// RowsForTeam returns the rows describing a team.
func (s *Service) RowsForTeam(code teams.Code) []domainschedule.Row {
	return s.store.RowsForTeam(code)
}

// Upcoming returns up to limit of the team's rows at or after from. Rows with a tip-off
// instant compare by instant; TBD rows compare by date key.
func (s *Service) Upcoming(code teams.Code, from time.Time, limit int) []domainschedule.Row {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	fromKey := timeutil.DateKey(from)
	out := make([]domainschedule.Row, 0, limit)
	for _, row := range s.store.RowsForTeam(code) {
		if len(out) == limit {
			break
		}
		if row.ISOTimestamp != "" {
			if tip, err := time.Parse(time.RFC3339, row.ISOTimestamp); err == nil {
				if !tip.Before(from) {
					out = append(out, row)
				}
				continue
			}
		}
		if row.DateKey >= fromKey {
			out = append(out, row)
		}
	}
	return out
}

// Days returns stored rows grouped by date key, in order.
func (s *Service) Days() []domainschedule.Day {
	days := domainschedule.GroupByDay(s.store.Rows())
	if days == nil {
		return []domainschedule.Day{}
	}
	return days
}
