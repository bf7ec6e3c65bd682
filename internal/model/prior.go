package model

import (
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// PriorEdge is a team's long-horizon strength: its average margin over a completed season
// plus a down-weighted margin from the last few weeks.
type PriorEdge struct {
	Team          teams.Code `json:"team"`
	SeasonEndYear int        `json:"seasonEndYear"`
	GamesPlayed   int        `json:"gamesPlayed"`
	AverageMargin float64    `json:"averageMargin"`
	RecentNudge   float64    `json:"recentNudge"`
	NudgeGames    int        `json:"nudgeGames"`
}

// SeasonPrior averages team's margin over the final regular-season games of the season
// ending in seasonEndYear. Postseason games and games outside the window are ignored.
func SeasonPrior(team teams.Code, seasonEndYear int, results []games.Result) PriorEdge {
	start, end := timeutil.SeasonWindow(seasonEndYear)
	edge := PriorEdge{Team: team, SeasonEndYear: seasonEndYear}

	sum := 0
	for _, r := range results {
		if r.Postseason || !r.Final() || r.Date < start || r.Date > end {
			continue
		}
		g, ok := Perspective(r, team)
		if !ok {
			continue
		}
		pf, pa, ok := g.Points()
		if !ok {
			continue
		}
		sum += pf - pa
		edge.GamesPlayed++
	}
	if edge.GamesPlayed > 0 {
		edge.AverageMargin = float64(sum) / float64(edge.GamesPlayed)
	}
	return edge
}

// NudgeWindow returns the [start, anchor) window the recent nudge reads.
func (m *Model) NudgeWindow(anchor time.Time) (start, end string) {
	end = timeutil.FormatDate(anchor)
	start = timeutil.FormatDate(anchor.AddDate(0, 0, -m.params.NudgeDays))
	return start, end
}

// RecentNudge averages team's margin over final games in the NudgeDays before anchor,
// regardless of season or stage, scaled by NudgeWeight.
func (m *Model) RecentNudge(team teams.Code, anchor time.Time, results []games.Result) (nudge float64, played int) {
	start, end := m.NudgeWindow(anchor)
	sum := 0
	for _, r := range results {
		if !r.Final() || r.Date < start || r.Date >= end {
			continue
		}
		g, ok := Perspective(r, team)
		if !ok {
			continue
		}
		pf, pa, ok := g.Points()
		if !ok {
			continue
		}
		sum += pf - pa
		played++
	}
	if played == 0 {
		return 0, 0
	}
	return m.params.NudgeWeight * float64(sum) / float64(played), played
}

// PointAdvantage is the home team's projected margin from priors and home court.
func (m *Model) PointAdvantage(home, away PriorEdge) float64 {
	return (home.AverageMargin - away.AverageMargin) + m.params.HomeCourtPoints + (home.RecentNudge - away.RecentNudge)
}

// PriorEstimate converts the prior point advantage into a low-confidence probability.
func (m *Model) PriorEstimate(home, away PriorEdge) ProbabilityEstimate {
	advantage := m.PointAdvantage(home, away)
	return ProbabilityEstimate{
		HomeWinProbability: m.logistic(advantage / m.params.Scale),
		Mode:               ModePrior,
		Confidence:         m.params.PriorConfidence,
		Factors:            m.priorFactors(home, away, advantage),
	}
}
