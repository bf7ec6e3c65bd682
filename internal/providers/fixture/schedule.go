package fixture

import (
	"strconv"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

type schedulePayload struct {
	LeagueSchedule struct {
		GameDates []scheduleDate `json:"gameDates"`
	} `json:"leagueSchedule"`
}

type scheduleDate struct {
	GameDate string         `json:"gameDate"`
	Games    []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GameID          string       `json:"gameId"`
	GameStatus      int          `json:"gameStatus"`
	GameStatusText  string       `json:"gameStatusText"`
	GameDateEst     string       `json:"gameDateEst"`
	GameDateTimeUTC string       `json:"gameDateTimeUTC"`
	HomeTeam        scheduleTeam `json:"homeTeam"`
	AwayTeam        scheduleTeam `json:"awayTeam"`
}

type scheduleTeam struct {
	TeamID      int    `json:"teamId"`
	TeamName    string `json:"teamName"`
	TeamCity    string `json:"teamCity"`
	TeamTricode string `json:"teamTricode"`
	Score       int    `json:"score"`
}

func toScheduleGame(g games.Game) scheduleGame {
	out := scheduleGame{
		GameID:          "002" + strconv.Itoa(g.Meta.UpstreamGameID),
		GameStatus:      1,
		GameStatusText:  "Scheduled",
		GameDateEst:     g.Date + "T00:00:00Z",
		GameDateTimeUTC: g.StartTime,
		HomeTeam:        scheduleTeamFrom(g.HomeTeam, g.Score.Home),
		AwayTeam:        scheduleTeamFrom(g.AwayTeam, g.Score.Away),
	}
	if g.Status == games.StatusFinal {
		out.GameStatus = 3
		out.GameStatusText = "Final"
	}
	return out
}

func scheduleTeamFrom(t teams.Team, points int) scheduleTeam {
	return scheduleTeam{
		TeamID:      t.NBAID,
		TeamName:    t.Name,
		TeamCity:    t.City,
		TeamTricode: t.Abbreviation,
		Score:       points,
	}
}
