package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
)

const defaultUpcoming = 5

type teamsResponse struct {
	Teams []teams.Team `json:"teams"`
}

type resolveResponse struct {
	Query string     `json:"query"`
	Team  teams.Team `json:"team"`
}

type upcomingResponse struct {
	Team teams.Code     `json:"team"`
	Rows []schedule.Row `json:"rows"`
}

type formResponse struct {
	Anchor string            `json:"anchor"`
	Form   model.FormSummary `json:"form"`
}

// Teams lists the canonical franchises.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, teamsResponse{Teams: h.teams.Teams()}, loggerFromContext(r, h.logger))
}

// ResolveTeam maps ?name= to a franchise, or 404 with close suggestions.
func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required", logger)
		return
	}
	team, suggestions, ok := h.lookupTeam(name)
	if !ok {
		writeUnknownTeam(w, r, name, suggestions, logger)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Query: name, Team: team}, logger)
}

// Upcoming returns the team's next games from now.
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	team, ok := h.pathTeam(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", defaultUpcoming, maxUpcoming)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	rows := h.schedule.Upcoming(team.Code(), h.now(), limit)
	writeJSON(w, http.StatusOK, upcomingResponse{Team: team.Code(), Rows: nonNil(rows)}, logger)
}

// Form summarizes the team's recent games before ?anchor= (default today).
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	team, ok := h.pathTeam(w, r)
	if !ok {
		return
	}
	n, err := intParam(r, "n", 0, maxFormGames)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	anchor, ok := dateParam(r, "anchor", h.today())
	if !ok {
		writeError(w, r, http.StatusBadRequest, dateFormatMsg, logger)
		return
	}

	form, err := h.edge.RecentForm(r.Context(), team.Code(), anchor, n)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{Anchor: anchor, Form: form}, logger)
}

func (h *Handler) pathTeam(w http.ResponseWriter, r *http.Request) (teams.Team, bool) {
	raw := chi.URLParam(r, "code")
	team, suggestions, ok := h.lookupTeam(raw)
	if !ok {
		writeUnknownTeam(w, r, raw, suggestions, loggerFromContext(r, h.logger))
		return teams.Team{}, false
	}
	return team, true
}
