package balldontlie

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

func (c *Client) mapGame(g gameResponse) games.Game {
	start := g.Datetime
	if start == "" {
		start = g.Date
	}
	return games.Game{
		ID:        fmt.Sprintf("%s-%d", providerName, g.ID),
		Provider:  providerName,
		HomeTeam:  c.mapTeam(g.HomeTeam),
		AwayTeam:  c.mapTeam(g.VisitorTeam),
		Date:      civilDate(g.Date),
		StartTime: start,
		Status:    mapStatus(g.Status),
		Score: games.Score{
			Home: g.HomeTeamScore,
			Away: g.VisitorTeamScore,
		},
		Meta: games.GameMeta{
			Season:         formatSeason(g.Season),
			UpstreamGameID: g.ID,
			Period:         g.Period,
			Postseason:     g.Postseason,
			Time:           strings.TrimSpace(g.Time),
		},
	}
}

// mapTeam prefers the canonical franchise record so abbreviations match team codes.
func (c *Client) mapTeam(t teamResponse) teams.Team {
	code, ok := c.resolver.ResolveBalldontlieID(t.ID)
	if !ok {
		code, ok = c.resolver.Resolve(t.FullName)
	}
	if !ok {
		code, ok = c.resolver.Resolve(t.Abbreviation)
	}
	if ok {
		if team, found := c.resolver.Team(code); found {
			return team
		}
	}
	return teams.Team{
		ID:            fmt.Sprintf("team-%d", t.ID),
		Name:          t.Name,
		FullName:      t.FullName,
		Abbreviation:  t.Abbreviation,
		City:          t.City,
		Conference:    t.Conference,
		Division:      t.Division,
		BalldontlieID: t.ID,
	}
}

func mapStatus(status string) games.GameStatus {
	lower := strings.ToLower(status)
	if strings.Contains(lower, "final") {
		return games.StatusFinal
	}
	switch lower {
	case "ended":
		return games.StatusFinal
	case "in progress", "halftime", "end of period":
		return games.StatusInProgress
	case "postponed":
		return games.StatusPostponed
	case "canceled", "cancelled":
		return games.StatusCanceled
	}
	if strings.Contains(lower, "qtr") {
		return games.StatusInProgress
	}
	return games.StatusScheduled
}

func civilDate(date string) string {
	if len(date) >= 10 {
		return date[:10]
	}
	return date
}

func formatSeason(season int) string {
	return fmt.Sprintf("%d", season)
}
