// Package edge computes recent form, prior-season edges, matchup probabilities and
// backtest verdicts from provider game logs.
package edge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-edge-service/internal/cache"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

const defaultBacktestConcurrency = 4

var (
	// ErrUnknownTeam is returned for codes outside the franchise table.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrSameTeam is returned when a matchup names one team twice.
	ErrSameTeam = errors.New("home and away teams must differ")
	// ErrInvalidDate is returned for anchors that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)

// Service answers form, prior and matchup questions. Anchors are civil dates (YYYY-MM-DD);
// only games strictly before the anchor are read.
type Service struct {
	provider    providers.Provider
	priors      cache.PriorCache
	model       *model.Model
	resolver    *teams.Resolver
	logger      *slog.Logger
	metrics     *metrics.Recorder
	concurrency int
}

// NewService wires a Service. A nil cache falls back to an in-memory cache and a nil model
// to the default parameters.
func NewService(provider providers.Provider, priors cache.PriorCache, m *model.Model, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if priors == nil {
		priors = cache.NewMemoryCache(cache.DefaultTTL)
	}
	if m == nil {
		m = model.Default()
	}
	return &Service{
		provider:    provider,
		priors:      priors,
		model:       m,
		resolver:    teams.Default(),
		logger:      logger,
		metrics:     recorder,
		concurrency: defaultBacktestConcurrency,
	}
}

// Model exposes the model the service predicts with.
func (s *Service) Model() *model.Model {
	return s.model
}

// RecentForm summarizes the team's last n regular-season games of the current season before
// anchor. n <= 0 uses the model window size.
func (s *Service) RecentForm(ctx context.Context, team teams.Code, anchor string, n int) (model.FormSummary, error) {
	code, err := s.team(team)
	if err != nil {
		return model.FormSummary{}, err
	}
	if _, err := parseAnchor(anchor); err != nil {
		return model.FormSummary{}, err
	}

	results, err := s.results(ctx, code, s.formStart(anchor), anchor)
	if err != nil {
		return model.FormSummary{}, err
	}
	return s.summarize(code, results, anchor, n), nil
}

// Prior returns the team's average margin over the season ending in seasonEndYear, cached.
func (s *Service) Prior(ctx context.Context, team teams.Code, seasonEndYear int) (model.PriorEdge, error) {
	code, err := s.team(team)
	if err != nil {
		return model.PriorEdge{}, err
	}

	edge, ok, err := s.priors.Get(ctx, code, seasonEndYear)
	if err != nil {
		logging.Warn(s.logger, "prior cache read failed", logging.FieldTeam, string(code), "err", err)
	}
	s.metrics.RecordCacheLookup(ok)
	if ok {
		return edge, nil
	}

	start, end := timeutil.SeasonWindow(seasonEndYear)
	log, err := s.provider.FetchGameLog(ctx, providers.GameQuery{Team: code, StartDate: start, EndDate: end})
	if err != nil {
		return model.PriorEdge{}, fmt.Errorf("fetch %s season %d: %w", code, seasonEndYear, err)
	}
	edge = model.SeasonPrior(code, seasonEndYear, games.ResultsFromGames(log))
	if err := s.priors.Set(ctx, edge); err != nil {
		logging.Warn(s.logger, "prior cache write failed", logging.FieldTeam, string(code), "err", err)
	}
	return edge, nil
}

// RecentNudge returns the weighted average margin over the nudge window before anchor.
func (s *Service) RecentNudge(ctx context.Context, team teams.Code, anchor string) (float64, int, error) {
	code, err := s.team(team)
	if err != nil {
		return 0, 0, err
	}
	day, err := parseAnchor(anchor)
	if err != nil {
		return 0, 0, err
	}

	start, _ := s.model.NudgeWindow(day)
	results, err := s.results(ctx, code, start, anchor)
	if err != nil {
		return 0, 0, err
	}
	nudge, played := s.model.RecentNudge(code, day, results)
	return nudge, played, nil
}

func (s *Service) summarize(code teams.Code, results []games.Result, anchor string, n int) model.FormSummary {
	recent := model.RecentGames(results, code, anchor)
	var summary model.FormSummary
	if n <= 0 {
		summary = s.model.Summarize(recent)
	} else {
		summary = s.model.SummarizeN(recent, n)
	}
	summary.Team = code
	return summary
}

// results fetches the team's games in [start, anchor); an empty window skips the fetch.
func (s *Service) results(ctx context.Context, code teams.Code, start, anchor string) ([]games.Result, error) {
	end, err := timeutil.AddDays(anchor, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, anchor)
	}
	if start > end {
		return nil, nil
	}
	log, err := s.provider.FetchGameLog(ctx, providers.GameQuery{Team: code, StartDate: start, EndDate: end})
	if err != nil {
		return nil, fmt.Errorf("fetch %s games %s..%s: %w", code, start, end, err)
	}
	return games.ResultsFromGames(log), nil
}

func (s *Service) formStart(anchor string) string {
	day, err := parseAnchor(anchor)
	if err != nil {
		return anchor
	}
	return timeutil.CurrentSeasonStart(day)
}

func (s *Service) team(code teams.Code) (teams.Code, error) {
	t, ok := s.resolver.Team(code)
	if !ok {
		return teams.Unresolved, fmt.Errorf("%w: %q", ErrUnknownTeam, code)
	}
	return t.Code(), nil
}
