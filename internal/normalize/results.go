package normalize

import (
	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// Results extracts completed game results from payloads that carry scores. Games that are
// not final, lack a score, or have an unresolved team are left out.
func (n *Normalizer) Results(payload []byte) []games.Result {
	parsed := Parse(payload)
	out := []games.Result{}
	for _, game := range parsed.Games {
		if !game.Final || game.Home.Score == "" || game.Away.Score == "" {
			continue
		}
		home, away := n.resolve(game.Home), n.resolve(game.Away)
		if !home.ok || !away.ok {
			continue
		}
		date := game.Date
		if date == "" && game.HasClock {
			date = timeutil.DateKey(game.Start)
		}
		status := game.Status
		if status == "" {
			status = "Final"
		}
		out = append(out, games.Result{
			GameID:     game.GameID,
			Date:       date,
			HomeTeam:   home.code,
			AwayTeam:   away.code,
			HomeScore:  game.Home.Score,
			AwayScore:  game.Away.Score,
			Status:     status,
			Postseason: game.Stage == schedule.StagePostseason,
		})
	}
	return out
}
