// Package handlers serves the schedule, team, form, edge and verdict endpoints.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/app/edge"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
	"github.com/preston-bernstein/nba-edge-service/internal/poller"
	"github.com/preston-bernstein/nba-edge-service/internal/snapshots"
)

type nowFunc func() time.Time

// ScheduleReader is the read side of the schedule service.
type ScheduleReader interface {
	Rows() []schedule.Row
	RowsForDate(date string) []schedule.Row
	RowsForTeam(code teams.Code) []schedule.Row
	Upcoming(code teams.Code, from time.Time, limit int) []schedule.Row
	Days() []schedule.Day
	ResultsForDate(date string) []games.Result
}

// TeamDirectory looks up franchises by code or free-form name.
type TeamDirectory interface {
	Teams() []teams.Team
	TeamByCode(code string) (teams.Team, bool)
	Resolve(name string) (teams.Team, []teams.Team, bool)
}

// EdgeService answers form, matchup and backtest questions.
type EdgeService interface {
	RecentForm(ctx context.Context, team teams.Code, anchor string, n int) (model.FormSummary, error)
	Matchup(ctx context.Context, home, away teams.Code, anchor string) (edge.MatchupReport, error)
	Backtest(ctx context.Context, date string) (edge.BacktestReport, error)
}

// Options carries the handler's collaborators. Snapshots and Status are optional.
type Options struct {
	Schedule  ScheduleReader
	Teams     TeamDirectory
	Edge      EdgeService
	Snapshots snapshots.Store
	Status    func() poller.Status
	Logger    *slog.Logger
}

// Handler wires HTTP routes to the application services.
type Handler struct {
	schedule ScheduleReader
	teams    TeamDirectory
	edge     EdgeService
	snaps    snapshots.Store
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(opts Options) *Handler {
	return &Handler{
		schedule: opts.Schedule,
		teams:    opts.Teams,
		edge:     opts.Edge,
		snaps:    opts.Snapshots,
		logger:   opts.Logger,
		now:      time.Now,
		statusFn: opts.Status,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unmatched routes with the JSON error shape.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
