package normalize

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
)

type leagueSchedulePayload struct {
	LeagueSchedule *struct {
		GameDates []struct {
			Games []json.RawMessage `json:"games"`
		} `json:"gameDates"`
	} `json:"leagueSchedule"`
}

type cdnTeam struct {
	TeamID      flexInt    `json:"teamId"`
	TeamName    string     `json:"teamName"`
	TeamCity    string     `json:"teamCity"`
	TeamTricode string     `json:"teamTricode"`
	Score       flexString `json:"score"`
}

type cdnGame struct {
	GameID          string  `json:"gameId"`
	GameStatus      flexInt `json:"gameStatus"`
	GameStatusText  string  `json:"gameStatusText"`
	GameDateEst     string  `json:"gameDateEst"`
	GameDateTimeUTC string  `json:"gameDateTimeUTC"`
	GameLabel       string  `json:"gameLabel"`
	GameSubLabel    string  `json:"gameSubLabel"`
	HomeTeam        cdnTeam `json:"homeTeam"`
	AwayTeam        cdnTeam `json:"awayTeam"`
	Broadcasters    struct {
		National []struct {
			Display string `json:"broadcasterDisplay"`
		} `json:"nationalBroadcasters"`
	} `json:"broadcasters"`
}

func parseLeagueSchedule(payload []byte) (ParsedSchedule, bool) {
	var doc leagueSchedulePayload
	if err := json.Unmarshal(payload, &doc); err != nil || doc.LeagueSchedule == nil || doc.LeagueSchedule.GameDates == nil {
		return ParsedSchedule{}, false
	}

	var out ParsedSchedule
	for _, day := range doc.LeagueSchedule.GameDates {
		for _, raw := range day.Games {
			var g cdnGame
			if err := json.Unmarshal(raw, &g); err != nil {
				out.Skipped++
				continue
			}
			game, ok := g.toRaw()
			if !ok {
				out.Skipped++
				continue
			}
			out.Games = append(out.Games, game)
		}
	}
	return out, true
}

func (g cdnGame) toRaw() (RawGame, bool) {
	game := RawGame{
		GameID: g.GameID,
		Home:   g.HomeTeam.side(),
		Away:   g.AwayTeam.side(),
		Stage:  cdnStage(g.GameID, g.GameLabel, g.GameSubLabel),
		Status: g.GameStatusText,
		Final:  g.GameStatus == 3 || strings.Contains(strings.ToLower(g.GameStatusText), "final"),
	}
	if len(g.Broadcasters.National) > 0 {
		game.Broadcast = g.Broadcasters.National[0].Display
	}

	tbd := strings.EqualFold(strings.TrimSpace(g.GameStatusText), "TBD")
	if start, ok := parseInstant(g.GameDateTimeUTC, time.UTC); ok && !tbd {
		game.Start = start
		game.HasClock = true
	}
	if date, ok := parseCivilDate(g.GameDateEst); ok {
		game.Date = date
	}
	if !game.HasClock && game.Date == "" {
		return RawGame{}, false
	}
	return game, true
}

func (t cdnTeam) side() Side {
	name := strings.TrimSpace(strings.TrimSpace(t.TeamCity) + " " + strings.TrimSpace(t.TeamName))
	return Side{Name: name, Tricode: t.TeamTricode, NBAID: int(t.TeamID), Score: string(t.Score)}
}

// cdnStage derives the stage from the game id prefix and event labels.
func cdnStage(gameID, label, subLabel string) schedule.SeasonStage {
	labels := strings.ToLower(label + " " + subLabel)
	if strings.Contains(labels, "cup") || strings.Contains(labels, "in-season") {
		return schedule.StageInSeasonTournament
	}
	if len(gameID) >= 3 {
		switch gameID[:3] {
		case "001":
			return schedule.StagePreseason
		case "004", "005":
			return schedule.StagePostseason
		case "006":
			return schedule.StageInSeasonTournament
		}
	}
	return schedule.StageRegularSeason
}
