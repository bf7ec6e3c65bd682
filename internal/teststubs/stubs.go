// Package teststubs holds hand-rolled doubles for provider, refresher and snapshot contracts.
package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// StubProvider is a test double for the game, game-log and schedule provider contracts.
// Logs, when set, answers FetchGameLog per team; otherwise Log is returned for every query.
type StubProvider struct {
	Games   []games.Game
	Log     []games.Game
	Logs    map[teams.Code][]games.Game
	Payload []byte
	Err     error
	Notify  chan struct{}

	Calls         atomic.Int32
	LogCalls      atomic.Int32
	ScheduleCalls atomic.Int32

	mu      sync.Mutex
	queries []games.LogQuery
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error) {
	_ = ctx
	_ = date
	_ = tz
	s.notify()
	s.Calls.Add(1)
	return s.Games, s.Err
}

// FetchGameLog records the query and returns the configured log.
func (s *StubProvider) FetchGameLog(ctx context.Context, q games.LogQuery) ([]games.Game, error) {
	_ = ctx
	s.notify()
	s.LogCalls.Add(1)

	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if s.Logs != nil {
		return s.Logs[q.Team], nil
	}
	return s.Log, nil
}

// FetchSchedule returns the configured payload.
func (s *StubProvider) FetchSchedule(ctx context.Context) ([]byte, error) {
	_ = ctx
	s.notify()
	s.ScheduleCalls.Add(1)
	return s.Payload, s.Err
}

// Queries returns the game-log queries received so far.
func (s *StubProvider) Queries() []games.LogQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]games.LogQuery(nil), s.queries...)
}

func (s *StubProvider) notify() {
	if s.Notify == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.Notify:
	default:
		close(s.Notify)
	}
}

// StubRefresher is a test double for poller.Refresher.
type StubRefresher struct {
	Rows   []schedule.Row
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
	once   sync.Once
}

// Refresh returns the configured rows and error while tracking calls.
func (r *StubRefresher) Refresh(ctx context.Context) ([]schedule.Row, error) {
	_ = ctx
	if r.Notify != nil {
		r.once.Do(func() { close(r.Notify) })
	}
	r.Calls.Add(1)
	return r.Rows, r.Err
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Days    map[string]schedule.DayResponse // keyed by date
	LoadErr error
}

// LoadSchedule returns rows for the given date if present in the Days map.
func (s *StubSnapshotStore) LoadSchedule(date string) (schedule.DayResponse, error) {
	if s.LoadErr != nil {
		return schedule.DayResponse{}, s.LoadErr
	}
	resp, ok := s.Days[date]
	if !ok {
		return schedule.DayResponse{}, errors.New("snapshot not found")
	}
	return resp, nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]schedule.DayResponse // keyed by date
	Err     error
}

// WriteScheduleSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteScheduleSnapshot(date string, day schedule.DayResponse) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	if w.Written == nil {
		w.Written = make(map[string]schedule.DayResponse)
	}
	w.Written[date] = day
	return nil
}

// Snapshot returns the written snapshot for date.
func (w *StubSnapshotWriter) Snapshot(date string) (schedule.DayResponse, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	day, ok := w.Written[date]
	return day, ok
}
