package edge

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
)

// BacktestGame is one completed game graded against the pre-game estimate.
type BacktestGame struct {
	GameID    string                    `json:"gameId"`
	HomeTeam  teams.Code                `json:"homeTeam"`
	AwayTeam  teams.Code                `json:"awayTeam"`
	HomeScore string                    `json:"homeScore"`
	AwayScore string                    `json:"awayScore"`
	Estimate  model.ProbabilityEstimate `json:"estimate"`
	Verdict   model.Verdict             `json:"verdict"`
}

// BacktestReport grades every final game on one date.
type BacktestReport struct {
	Date     string         `json:"date"`
	Games    []BacktestGame `json:"games"`
	Accuracy model.Accuracy `json:"accuracy"`
}

// Backtest predicts every final game on date using only games before it and grades the
// predictions against the final scores.
func (s *Service) Backtest(ctx context.Context, date string) (BacktestReport, error) {
	if _, err := parseAnchor(date); err != nil {
		return BacktestReport{}, err
	}
	played, err := s.provider.FetchGames(ctx, date, "")
	if err != nil {
		return BacktestReport{}, fmt.Errorf("fetch games %s: %w", date, err)
	}
	results := s.gradeable(games.ResultsFromGames(played), date)

	graded := make([]BacktestGame, len(results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, r := range results {
		g.Go(func() error {
			report, err := s.Matchup(gctx, r.HomeTeam, r.AwayTeam, date)
			if err != nil {
				return fmt.Errorf("backtest %s: %w", r.GameID, err)
			}
			graded[i] = BacktestGame{
				GameID:    r.GameID,
				HomeTeam:  r.HomeTeam,
				AwayTeam:  r.AwayTeam,
				HomeScore: r.HomeScore,
				AwayScore: r.AwayScore,
				Estimate:  report.Estimate,
				Verdict:   model.EvaluateResult(r, report.Estimate.HomeWinProbability),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BacktestReport{}, err
	}

	verdicts := make([]model.Verdict, len(graded))
	for i, bg := range graded {
		verdicts[i] = bg.Verdict
	}
	return BacktestReport{Date: date, Games: graded, Accuracy: model.Tally(verdicts)}, nil
}

// gradeable keeps final games on date between two known franchises.
func (s *Service) gradeable(results []games.Result, date string) []games.Result {
	out := make([]games.Result, 0, len(results))
	for _, r := range results {
		if !r.Final() || r.Date != date {
			continue
		}
		if _, err := s.team(r.HomeTeam); err != nil {
			logging.Debug(s.logger, "backtest skipped game", "game_id", r.GameID, "err", err)
			continue
		}
		if _, err := s.team(r.AwayTeam); err != nil {
			logging.Debug(s.logger, "backtest skipped game", "game_id", r.GameID, "err", err)
			continue
		}
		out = append(out, r)
	}
	return out
}
