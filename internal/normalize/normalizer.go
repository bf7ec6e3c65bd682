package normalize

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// Normalizer turns upstream schedule payloads into canonical rows.
type Normalizer struct {
	resolver *teams.Resolver
	logger   *slog.Logger
}

// Result describes one normalization run.
type Result struct {
	Shape Shape
	Rows  []schedule.Row
	// Skipped counts malformed records; Dropped counts games with no resolvable team.
	Skipped    int
	Dropped    int
	Unresolved []string
}

// New builds a Normalizer. A nil resolver uses the default franchise table.
func New(resolver *teams.Resolver, logger *slog.Logger) *Normalizer {
	if resolver == nil {
		resolver = teams.Default()
	}
	return &Normalizer{resolver: resolver, logger: logger}
}

// Normalize runs the default normalizer and returns only the rows.
func Normalize(payload []byte) []schedule.Row {
	return New(nil, nil).Run(payload).Rows
}

// Run parses payload and emits sorted, deduplicated rows. It never fails: unknown payloads
// yield an empty row set and malformed records are counted and logged.
func (n *Normalizer) Run(payload []byte) Result {
	parsed := Parse(payload)
	res := Result{Shape: parsed.Shape, Skipped: parsed.Skipped, Rows: []schedule.Row{}}
	if parsed.Shape == ShapeUnknown {
		logging.Warn(n.logger, "schedule payload matched no known shape", "bytes", len(payload))
		return res
	}

	seen := make(map[schedule.RowKey]struct{})
	unresolved := make(map[string]struct{})
	for _, game := range parsed.Games {
		rows, missing := n.rowsFor(game)
		for _, name := range missing {
			if _, ok := unresolved[name]; !ok {
				unresolved[name] = struct{}{}
				res.Unresolved = append(res.Unresolved, name)
			}
		}
		if len(rows) == 0 {
			res.Dropped++
			logging.Debug(n.logger, "dropped game with no resolvable team",
				"game_id", game.GameID,
				"home", game.Home.Name,
				"away", game.Away.Name,
			)
			continue
		}
		for _, row := range rows {
			key := row.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			res.Rows = append(res.Rows, row)
		}
	}
	schedule.SortRows(res.Rows)

	if res.Skipped > 0 {
		logging.Warn(n.logger, "skipped malformed schedule records",
			logging.FieldShape, string(res.Shape),
			logging.FieldCount, res.Skipped,
		)
	}
	if len(res.Unresolved) > 0 {
		logging.Debug(n.logger, "unresolved team names",
			logging.FieldShape, string(res.Shape),
			"names", res.Unresolved,
			"suggestions", n.suggestions(res.Unresolved),
		)
	}
	return res
}

type resolvedSide struct {
	code teams.Code
	name string
	ok   bool
}

// rowsFor emits the home and away perspective rows for a game, omitting a side whose team
// could not be resolved. missing lists the raw names that failed to resolve.
func (n *Normalizer) rowsFor(game RawGame) (rows []schedule.Row, missing []string) {
	home := n.resolve(game.Home)
	away := n.resolve(game.Away)
	if !home.ok {
		missing = append(missing, game.Home.Name)
	}
	if !away.ok {
		missing = append(missing, game.Away.Name)
	}
	if !home.ok && !away.ok {
		return nil, missing
	}

	base := schedule.Row{
		DateKey:        game.Date,
		LocalTimeLabel: timeutil.TBD,
		SeasonStage:    game.Stage,
		GameID:         game.GameID,
		Broadcast:      game.Broadcast,
	}
	if game.HasClock {
		base.DateKey = timeutil.DateKey(game.Start)
		base.ISOTimestamp = game.Start.UTC().Format(time.RFC3339)
		base.LocalTimeLabel = timeutil.TimeLabel(game.Start)
	}

	if home.ok {
		row := base
		row.TeamCode, row.TeamName = home.code, home.name
		row.HomeAway = schedule.Home
		row.OpponentCode, row.OpponentName = away.code, away.name
		rows = append(rows, row)
	}
	if away.ok {
		row := base
		row.TeamCode, row.TeamName = away.code, away.name
		row.HomeAway = schedule.Away
		row.OpponentCode, row.OpponentName = home.code, home.name
		rows = append(rows, row)
	}
	return rows, missing
}

// resolve tries the display name, then the tricode, then the NBA team id.
func (n *Normalizer) resolve(side Side) resolvedSide {
	code, ok := n.resolver.Resolve(side.Name)
	if !ok && side.Tricode != "" {
		code, ok = n.resolver.Resolve(side.Tricode)
	}
	if !ok && side.NBAID != 0 {
		code, ok = n.resolver.ResolveNBAID(side.NBAID)
	}
	if !ok {
		return resolvedSide{name: teams.Canonicalize(side.Name)}
	}
	name := teams.Canonicalize(side.Name)
	if team, found := n.resolver.Team(code); found {
		name = team.FullName
	}
	return resolvedSide{code: code, name: name, ok: true}
}

func (n *Normalizer) suggestions(names []string) map[string][]string {
	out := make(map[string][]string, len(names))
	for _, name := range names {
		for _, team := range n.resolver.Suggest(name, 3) {
			out[name] = append(out[name], string(team.Code()))
		}
	}
	return out
}
