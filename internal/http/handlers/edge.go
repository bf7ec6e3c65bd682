package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// Edge estimates the home-win probability for ?home=&away= before ?anchor= (default today).
func (h *Handler) Edge(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	home, ok := h.queryTeam(w, r, "home")
	if !ok {
		return
	}
	away, ok := h.queryTeam(w, r, "away")
	if !ok {
		return
	}
	anchor, ok := dateParam(r, "anchor", h.today())
	if !ok {
		writeError(w, r, http.StatusBadRequest, dateFormatMsg, logger)
		return
	}

	report, err := h.edge.Matchup(r.Context(), home, away, anchor)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "matchup estimated",
		slog.String("home", string(home)),
		slog.String("away", string(away)),
		slog.String(logging.FieldDate, anchor),
		slog.String("mode", string(report.Estimate.Mode)),
	)
	writeJSON(w, http.StatusOK, report, logger)
}

// Verdicts backtests every final game on ?date= (default yesterday).
func (h *Handler) Verdicts(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	yesterday, _ := timeutil.AddDays(h.today(), -1)
	date, ok := dateParam(r, "date", yesterday)
	if !ok {
		writeError(w, r, http.StatusBadRequest, dateFormatMsg, logger)
		return
	}

	report, err := h.edge.Backtest(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, report, logger)
}

func (h *Handler) queryTeam(w http.ResponseWriter, r *http.Request, name string) (teams.Code, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, name+" is required", loggerFromContext(r, h.logger))
		return teams.Unresolved, false
	}
	team, suggestions, ok := h.lookupTeam(raw)
	if !ok {
		writeUnknownTeam(w, r, raw, suggestions, loggerFromContext(r, h.logger))
		return teams.Unresolved, false
	}
	return team.Code(), true
}
