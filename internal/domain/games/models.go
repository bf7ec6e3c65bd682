package games

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season         string `json:"season"`
	UpstreamGameID int    `json:"upstreamGameId"`
	Period         int    `json:"period,omitempty"`
	Postseason     bool   `json:"postseason,omitempty"`
	Time           string `json:"time,omitempty"`
}

// Game is the canonical game shape returned by game-log providers.
// Date is the civil game date (YYYY-MM-DD); StartTime is the tip-off instant when known.
type Game struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	HomeTeam  teams.Team `json:"homeTeam"`
	AwayTeam  teams.Team `json:"awayTeam"`
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Meta      GameMeta   `json:"meta"`
}

// Result is a completed (or in-flight) game reduced to what the model consumes.
// Scores stay as upstream text; Scores reports whether both parse.
type Result struct {
	GameID     string     `json:"gameId"`
	Date       string     `json:"date"`
	HomeTeam   teams.Code `json:"homeTeam"`
	AwayTeam   teams.Code `json:"awayTeam"`
	HomeScore  string     `json:"homeScore"`
	AwayScore  string     `json:"awayScore"`
	Status     string     `json:"status"`
	Postseason bool       `json:"postseason"`
}

// ResultFromGame reduces a provider game to a Result. Team codes come from the
// teams' abbreviations, which providers set to canonical codes.
func ResultFromGame(g Game) Result {
	date := g.Date
	if date == "" && len(g.StartTime) >= 10 {
		date = g.StartTime[:10]
	}
	return Result{
		GameID:     g.ID,
		Date:       date,
		HomeTeam:   g.HomeTeam.Code(),
		AwayTeam:   g.AwayTeam.Code(),
		HomeScore:  strconv.Itoa(g.Score.Home),
		AwayScore:  strconv.Itoa(g.Score.Away),
		Status:     string(g.Status),
		Postseason: g.Meta.Postseason,
	}
}

// ResultsFromGames maps a slice of games to results.
func ResultsFromGames(gs []Game) []Result {
	out := make([]Result, 0, len(gs))
	for _, g := range gs {
		out = append(out, ResultFromGame(g))
	}
	return out
}

// Final reports whether the status marks a completed game.
func (r Result) Final() bool {
	return strings.Contains(strings.ToLower(r.Status), "final")
}

// Involves reports whether code played in the game.
func (r Result) Involves(code teams.Code) bool {
	return r.HomeTeam == code || r.AwayTeam == code
}

// Scores parses both scores; ok is false when either is missing or malformed.
func (r Result) Scores() (home, away int, ok bool) {
	h, err := strconv.Atoi(strings.TrimSpace(r.HomeScore))
	if err != nil {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(r.AwayScore))
	if err != nil {
		return 0, 0, false
	}
	return h, a, true
}

// LogQuery selects a team's games over an inclusive date range. A nil Postseason
// returns both regular-season and postseason games.
type LogQuery struct {
	Team       teams.Code
	StartDate  string
	EndDate    string
	Postseason *bool
}
