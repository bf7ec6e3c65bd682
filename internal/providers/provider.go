package providers

import (
	"context"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
)

// GameProvider defines how upstream game data is fetched and normalized.
// The date parameter, when provided, should be a YYYY-MM-DD string indicating which day's games to fetch.
// Providers should interpret an empty date as "today" in their configured timezone.
type GameProvider interface {
	FetchGames(ctx context.Context, date string, tz string) ([]games.Game, error)
}

// GameQuery selects a team's games over a date range.
type GameQuery = games.LogQuery

// GameLogProvider fetches a team's games over a date range, following pagination to the end.
type GameLogProvider interface {
	FetchGameLog(ctx context.Context, q GameQuery) ([]games.Game, error)
}

// ScheduleProvider fetches a raw league schedule payload for normalization.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context) ([]byte, error)
}

// Provider combines the game capabilities the edge model reads.
type Provider interface {
	GameProvider
	GameLogProvider
}
