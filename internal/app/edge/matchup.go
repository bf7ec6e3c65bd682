package edge

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

// MatchupReport is everything behind one home-win probability.
type MatchupReport struct {
	Anchor        string                    `json:"anchor"`
	SeasonEndYear int                       `json:"seasonEndYear"`
	Home          model.FormSummary         `json:"home"`
	Away          model.FormSummary         `json:"away"`
	HomePrior     model.PriorEdge           `json:"homePrior"`
	AwayPrior     model.PriorEdge           `json:"awayPrior"`
	Estimate      model.ProbabilityEstimate `json:"estimate"`
}

type sideData struct {
	form  model.FormSummary
	prior model.PriorEdge
}

// Matchup fetches both teams concurrently and blends their form and priors. The prior comes
// from the last season completed before anchor.
func (s *Service) Matchup(ctx context.Context, home, away teams.Code, anchor string) (MatchupReport, error) {
	homeCode, err := s.team(home)
	if err != nil {
		return MatchupReport{}, err
	}
	awayCode, err := s.team(away)
	if err != nil {
		return MatchupReport{}, err
	}
	if homeCode == awayCode {
		return MatchupReport{}, ErrSameTeam
	}
	day, err := parseAnchor(anchor)
	if err != nil {
		return MatchupReport{}, err
	}
	endYear := timeutil.LastCompletedSeasonEndYear(day)

	var homeSide, awaySide sideData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		homeSide, err = s.side(gctx, homeCode, day, anchor, endYear)
		return err
	})
	g.Go(func() error {
		var err error
		awaySide, err = s.side(gctx, awayCode, day, anchor, endYear)
		return err
	})
	if err := g.Wait(); err != nil {
		return MatchupReport{}, err
	}

	estimate := s.model.Blend(homeSide.form, awaySide.form, homeSide.prior, awaySide.prior)
	s.metrics.RecordPrediction(string(estimate.Mode))

	return MatchupReport{
		Anchor:        anchor,
		SeasonEndYear: endYear,
		Home:          homeSide.form,
		Away:          awaySide.form,
		HomePrior:     homeSide.prior,
		AwayPrior:     awaySide.prior,
		Estimate:      estimate,
	}, nil
}

// side reads one game log covering both the season-to-date form window and the nudge
// window, plus the cached prior.
func (s *Service) side(ctx context.Context, code teams.Code, day time.Time, anchor string, endYear int) (sideData, error) {
	start := s.formStart(anchor)
	if nudgeStart, _ := s.model.NudgeWindow(day); nudgeStart < start {
		start = nudgeStart
	}
	results, err := s.results(ctx, code, start, anchor)
	if err != nil {
		return sideData{}, err
	}

	prior, err := s.Prior(ctx, code, endYear)
	if err != nil {
		return sideData{}, err
	}
	prior.RecentNudge, prior.NudgeGames = s.model.RecentNudge(code, day, results)

	return sideData{
		form:  s.summarize(code, results, anchor, 0),
		prior: prior,
	}, nil
}

func parseAnchor(anchor string) (time.Time, error) {
	day, err := timeutil.ParseDate(anchor)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}
