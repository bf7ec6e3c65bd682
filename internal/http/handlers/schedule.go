package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

type rowsResponse struct {
	Rows []schedule.Row `json:"rows"`
}

type daysResponse struct {
	Days []schedule.Day `json:"days"`
}

type resultsResponse struct {
	Date    string         `json:"date"`
	Results []games.Result `json:"results"`
}

// Schedule returns canonical rows, optionally for one date and/or one team. A date the
// in-memory store has nothing for is served from its snapshot when one exists.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	date, ok := dateParam(r, "date", "")
	if !ok {
		writeError(w, r, http.StatusBadRequest, dateFormatMsg, logger)
		return
	}

	var team teams.Code
	if raw := strings.TrimSpace(r.URL.Query().Get("team")); raw != "" {
		t, suggestions, ok := h.lookupTeam(raw)
		if !ok {
			writeUnknownTeam(w, r, raw, suggestions, logger)
			return
		}
		team = t.Code()
	}

	if date == "" {
		rows := h.schedule.Rows()
		if team != teams.Unresolved {
			rows = h.schedule.RowsForTeam(team)
		}
		writeJSON(w, http.StatusOK, rowsResponse{Rows: nonNil(rows)}, logger)
		return
	}

	rows, source := h.rowsForDate(date)
	rows = filterTeam(rows, team)
	logging.Info(logger, "served schedule",
		slog.String(logging.FieldDate, date),
		slog.String(logging.FieldProvider, source),
		slog.Int(logging.FieldCount, len(rows)),
	)
	writeJSON(w, http.StatusOK, schedule.NewDayResponse(date, rows), logger)
}

// ScheduleDays returns rows bucketed by date key in chronological order.
func (h *Handler) ScheduleDays(w http.ResponseWriter, r *http.Request) {
	days := h.schedule.Days()
	if days == nil {
		days = []schedule.Day{}
	}
	writeJSON(w, http.StatusOK, daysResponse{Days: days}, loggerFromContext(r, h.logger))
}

// Results returns the final scores the schedule feed reported for ?date= (default yesterday),
// optionally only those involving ?team=.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	yesterday, _ := timeutil.AddDays(h.today(), -1)
	date, ok := dateParam(r, "date", yesterday)
	if !ok {
		writeError(w, r, http.StatusBadRequest, dateFormatMsg, logger)
		return
	}

	results := h.schedule.ResultsForDate(date)
	if raw := strings.TrimSpace(r.URL.Query().Get("team")); raw != "" {
		t, suggestions, ok := h.lookupTeam(raw)
		if !ok {
			writeUnknownTeam(w, r, raw, suggestions, logger)
			return
		}
		filtered := make([]games.Result, 0, len(results))
		for _, res := range results {
			if res.Involves(t.Code()) {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}
	if results == nil {
		results = []games.Result{}
	}
	writeJSON(w, http.StatusOK, resultsResponse{Date: date, Results: results}, logger)
}

func (h *Handler) rowsForDate(date string) ([]schedule.Row, string) {
	if rows := h.schedule.RowsForDate(date); len(rows) > 0 {
		return rows, "cache"
	}
	if h.snaps == nil {
		return nil, "cache"
	}
	day, err := h.snaps.LoadSchedule(date)
	if err != nil {
		logging.Debug(h.logger, "no snapshot for date", slog.String(logging.FieldDate, date), slog.Any("err", err))
		return nil, "cache"
	}
	return day.Rows, "snapshot"
}

func filterTeam(rows []schedule.Row, team teams.Code) []schedule.Row {
	if team == teams.Unresolved {
		return rows
	}
	out := make([]schedule.Row, 0, len(rows))
	for _, row := range rows {
		if row.TeamCode == team {
			out = append(out, row)
		}
	}
	return out
}

func nonNil(rows []schedule.Row) []schedule.Row {
	if rows == nil {
		return []schedule.Row{}
	}
	return rows
}
