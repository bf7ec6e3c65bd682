package model

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// Outcome is a game result from one team's perspective.
type Outcome int

const (
	Loss Outcome = -1
	Tie  Outcome = 0
	Win  Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "W"
	case Loss:
		return "L"
	default:
		return "T"
	}
}

// TeamGame is a completed game seen from one team's side.
type TeamGame struct {
	GameID        string            `json:"gameId,omitempty"`
	Date          string            `json:"date"`
	Team          teams.Code        `json:"team"`
	Opponent      teams.Code        `json:"opponent"`
	HomeAway      schedule.HomeAway `json:"homeAway"`
	PointsFor     string            `json:"pointsFor"`
	PointsAgainst string            `json:"pointsAgainst"`
}

// Perspective returns r from team's side. ok is false when team did not play.
func Perspective(r games.Result, team teams.Code) (TeamGame, bool) {
	g := TeamGame{GameID: r.GameID, Date: r.Date, Team: team}
	switch team {
	case r.HomeTeam:
		g.Opponent, g.HomeAway = r.AwayTeam, schedule.Home
		g.PointsFor, g.PointsAgainst = r.HomeScore, r.AwayScore
	case r.AwayTeam:
		g.Opponent, g.HomeAway = r.HomeTeam, schedule.Away
		g.PointsFor, g.PointsAgainst = r.AwayScore, r.HomeScore
	default:
		return TeamGame{}, false
	}
	return g, true
}

// Points parses both scores; ok is false when either is unparseable.
func (g TeamGame) Points() (pointsFor, pointsAgainst int, ok bool) {
	pf, err := strconv.Atoi(strings.TrimSpace(g.PointsFor))
	if err != nil {
		return 0, 0, false
	}
	pa, err := strconv.Atoi(strings.TrimSpace(g.PointsAgainst))
	if err != nil {
		return 0, 0, false
	}
	return pf, pa, true
}

// Margin is points for minus points against, or 0 when a score is unparseable.
func (g TeamGame) Margin() int {
	pf, pa, ok := g.Points()
	if !ok {
		return 0
	}
	return pf - pa
}

// Outcome classifies the game by margin. Unparseable scores count as a tie.
func (g TeamGame) Outcome() Outcome {
	switch m := g.Margin(); {
	case m > 0:
		return Win
	case m < 0:
		return Loss
	default:
		return Tie
	}
}

// RecentGames filters results to team's final regular-season games dated strictly before
// anchor and returns them most recent first from team's perspective.
func RecentGames(results []games.Result, team teams.Code, anchor string) []TeamGame {
	out := make([]TeamGame, 0, len(results))
	for _, r := range results {
		if !r.Final() || r.Postseason || r.Date == "" || (anchor != "" && r.Date >= anchor) {
			continue
		}
		if g, ok := Perspective(r, team); ok {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].GameID > out[j].GameID
	})
	return out
}

// FormSummary aggregates a team's most recent games.
type FormSummary struct {
	Team                 teams.Code `json:"team,omitempty"`
	GamesPlayed          int        `json:"gamesPlayed"`
	Wins                 int        `json:"wins"`
	Losses               int        `json:"losses"`
	Ties                 int        `json:"ties"`
	WinRate              float64    `json:"winRate"`
	AverageMargin        float64    `json:"averageMargin"`
	WeightedRecentScore  float64    `json:"weightedRecentScore"`
	AveragePointsFor     float64    `json:"averagePointsFor"`
	AveragePointsAgainst float64    `json:"averagePointsAgainst"`
	Games                []TeamGame `json:"games"`
}

// Record returns wins minus losses.
func (s FormSummary) Record() int {
	return s.Wins - s.Losses
}

// Summarize summarizes the first WindowSize games of a most-recent-first list.
func (m *Model) Summarize(games []TeamGame) FormSummary {
	return m.SummarizeN(games, m.params.WindowSize)
}

// SummarizeN summarizes at most n games of a most-recent-first list. With no games the
// summary is neutral: win rate 0.5 and zero margins.
func (m *Model) SummarizeN(games []TeamGame, n int) FormSummary {
	if n < 0 {
		n = 0
	}
	if len(games) > n {
		games = games[:n]
	}
	s := FormSummary{GamesPlayed: len(games), WinRate: 0.5, Games: append([]TeamGame{}, games...)}
	if len(games) == 0 {
		return s
	}
	s.Team = games[0].Team

	weights := decayWeights(len(games), m.params.Decay)
	var (
		marginSum          int
		pointsFor, against int
		scored             int
	)
	for i, g := range games {
		outcome := g.Outcome()
		switch outcome {
		case Win:
			s.Wins++
		case Loss:
			s.Losses++
		default:
			s.Ties++
		}
		s.WeightedRecentScore += weights[i] * float64(outcome)
		marginSum += g.Margin()
		if pf, pa, ok := g.Points(); ok {
			pointsFor += pf
			against += pa
			scored++
		}
	}

	played := float64(s.GamesPlayed)
	s.WinRate = (float64(s.Wins) + 0.5*float64(s.Ties)) / played
	s.AverageMargin = float64(marginSum) / played
	if scored > 0 {
		s.AveragePointsFor = float64(pointsFor) / float64(scored)
		s.AveragePointsAgainst = float64(against) / float64(scored)
	}
	return s
}

// decayWeights returns decay^i for i in [0,k), normalized to sum to 1.
func decayWeights(k int, decay float64) []float64 {
	weights := make([]float64, k)
	total := 0.0
	for i := range weights {
		weights[i] = math.Pow(decay, float64(i))
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}
