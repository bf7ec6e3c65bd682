package testutil

import (
	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// SampleRows returns the two canonical rows for one game between home and away on date.
func SampleRows(date string, home, away teams.Code) []schedule.Row {
	resolver := teams.Default()
	homeTeam, _ := resolver.Team(home)
	awayTeam, _ := resolver.Team(away)
	tip := date + "T23:30:00Z"
	gameID := "g-" + date + "-" + string(home) + "-" + string(away)
	return []schedule.Row{
		{
			DateKey:        date,
			ISOTimestamp:   tip,
			LocalTimeLabel: "7:30 PM ET",
			TeamCode:       home,
			TeamName:       homeTeam.FullName,
			HomeAway:       schedule.Home,
			OpponentCode:   away,
			OpponentName:   awayTeam.FullName,
			SeasonStage:    schedule.StageRegularSeason,
			GameID:         gameID,
		},
		{
			DateKey:        date,
			ISOTimestamp:   tip,
			LocalTimeLabel: "7:30 PM ET",
			TeamCode:       away,
			TeamName:       awayTeam.FullName,
			HomeAway:       schedule.Away,
			OpponentCode:   home,
			OpponentName:   homeTeam.FullName,
			SeasonStage:    schedule.StageRegularSeason,
			GameID:         gameID,
		},
	}
}

// FinalGame returns a completed regular-season game with the given score.
func FinalGame(id, date string, home, away teams.Code, homeScore, awayScore int) games.Game {
	resolver := teams.Default()
	homeTeam, _ := resolver.Team(home)
	awayTeam, _ := resolver.Team(away)
	return games.Game{
		ID:        id,
		Provider:  "test",
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		StartTime: date + "T23:30:00Z",
		Date:      date,
		Status:    games.StatusFinal,
		Score:     games.Score{Home: homeScore, Away: awayScore},
	}
}
