package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

const (
	maxFormGames  = 82
	maxUpcoming   = 50
	dateFormatMsg = "invalid date format (expected YYYY-MM-DD)"
)

// dateParam returns the named query date, or fallback when absent. ok is false for malformed dates.
func dateParam(r *http.Request, name, fallback string) (string, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, true
	}
	if _, err := timeutil.ParseDate(raw); err != nil {
		return "", false
	}
	return raw, true
}

// intParam parses a positive integer query value in [1, upper]; absent values return def.
func intParam(r *http.Request, name string, def, upper int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > upper {
		return 0, fmt.Errorf("%s must be an integer between 1 and %d", name, upper)
	}
	return n, nil
}

// lookupTeam accepts a canonical code in any case or a free-form team name.
func (h *Handler) lookupTeam(value string) (teams.Team, []teams.Team, bool) {
	value = strings.TrimSpace(value)
	if team, ok := h.teams.TeamByCode(strings.ToUpper(value)); ok {
		return team, nil, true
	}
	return h.teams.Resolve(value)
}

func (h *Handler) today() string {
	return timeutil.DateKey(h.now())
}
