package normalize

import (
	"encoding/json"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
)

type legacyPayload struct {
	League *struct {
		Standard []json.RawMessage `json:"standard"`
	} `json:"league"`
}

type legacyTeam struct {
	TeamID   flexInt    `json:"teamId"`
	TriCode  string     `json:"triCode"`
	FullName string     `json:"fullName"`
	Score    flexString `json:"score"`
}

type legacyGame struct {
	GameID           string     `json:"gameId"`
	SeasonStageID    flexInt    `json:"seasonStageId"`
	StartTimeUTC     string     `json:"startTimeUTC"`
	StartDateEastern string     `json:"startDateEastern"`
	IsStartTimeTBD   bool       `json:"isStartTimeTBD"`
	StatusNum        flexInt    `json:"statusNum"`
	HTeam            legacyTeam `json:"hTeam"`
	VTeam            legacyTeam `json:"vTeam"`
	Watch            struct {
		Broadcast struct {
			Broadcasters struct {
				National []struct {
					ShortName string `json:"shortName"`
				} `json:"national"`
			} `json:"broadcasters"`
		} `json:"broadcast"`
	} `json:"watch"`
}

func parseLegacy(payload []byte) (ParsedSchedule, bool) {
	var doc legacyPayload
	if err := json.Unmarshal(payload, &doc); err != nil || doc.League == nil || doc.League.Standard == nil {
		return ParsedSchedule{}, false
	}

	var out ParsedSchedule
	for _, raw := range doc.League.Standard {
		var g legacyGame
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
	return out, true
}

func (g legacyGame) toRaw() (RawGame, bool) {
	game := RawGame{
		GameID: g.GameID,
		Home:   g.HTeam.side(),
		Away:   g.VTeam.side(),
		Stage:  legacyStage(int(g.SeasonStageID)),
		Final:  g.StatusNum == 3,
	}
	if game.Final {
		game.Status = "Final"
	}
	if national := g.Watch.Broadcast.Broadcasters.National; len(national) > 0 {
		game.Broadcast = national[0].ShortName
	}
	if start, ok := parseInstant(g.StartTimeUTC, time.UTC); ok && !g.IsStartTimeTBD {
		game.Start = start
		game.HasClock = true
	}
	if date, ok := parseCivilDate(g.StartDateEastern); ok {
		game.Date = date
	}
	if !game.HasClock && game.Date == "" {
		return RawGame{}, false
	}
	return game, true
}

func (t legacyTeam) side() Side {
	name := t.FullName
	if name == "" {
		name = t.TriCode
	}
	return Side{Name: name, Tricode: t.TriCode, NBAID: int(t.TeamID), Score: string(t.Score)}
}

func legacyStage(id int) schedule.SeasonStage {
	switch id {
	case 1:
		return schedule.StagePreseason
	case 3:
		return schedule.StageInSeasonTournament
	case 4, 5:
		return schedule.StagePostseason
	default:
		return schedule.StageRegularSeason
	}
}
