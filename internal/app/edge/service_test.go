package edge

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/cache"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/metrics"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-edge-service/internal/teststubs"
)

func team(code string) teams.Team {
	return teams.Team{Abbreviation: code}
}

func finalGame(id, date, home, away string, hs, as int) games.Game {
	return games.Game{
		ID:       id,
		HomeTeam: team(home),
		AwayTeam: team(away),
		Date:     date,
		Status:   games.StatusFinal,
		Score:    games.Score{Home: hs, Away: as},
	}
}

func newService(p *teststubs.StubProvider) (*Service, *metrics.Recorder) {
	rec := metrics.NewRecorder()
	return NewService(p, cache.NewMemoryCache(0), nil, nil, rec), rec
}

func TestRecentFormReadsGamesBeforeAnchor(t *testing.T) {
	playoff := finalGame("p1", "2023-06-01", "BOS", "MIA", 90, 100)
	playoff.Meta.Postseason = true
	p := &teststubs.StubProvider{Logs: map[teams.Code][]games.Game{"BOS": {
		finalGame("g1", "2024-01-05", "BOS", "NYK", 110, 100),
		finalGame("g2", "2024-01-08", "LAL", "BOS", 120, 100),
		finalGame("g3", "2024-01-10", "BOS", "MIA", 130, 90),
		playoff,
	}}}
	svc, _ := newService(p)

	form, err := svc.RecentForm(context.Background(), "bos", "2024-01-10", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Team != "BOS" || form.GamesPlayed != 2 || form.Wins != 1 || form.Losses != 1 {
		t.Fatalf("unexpected form %+v", form)
	}
	if form.Games[0].GameID != "g2" {
		t.Fatalf("expected most recent game first, got %+v", form.Games[0])
	}

	q := p.Queries()[0]
	if q.Team != "BOS" || q.StartDate != "2023-10-01" || q.EndDate != "2024-01-09" {
		t.Fatalf("unexpected query %+v", q)
	}
}

func TestRecentFormNoGamesIsNeutral(t *testing.T) {
	svc, _ := newService(&teststubs.StubProvider{})
	form, err := svc.RecentForm(context.Background(), "NYK", "2024-01-10", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Team != "NYK" || form.GamesPlayed != 0 || form.WinRate != 0.5 {
		t.Fatalf("expected neutral form, got %+v", form)
	}
}

func TestRecentFormValidatesInput(t *testing.T) {
	svc, _ := newService(&teststubs.StubProvider{})
	if _, err := svc.RecentForm(context.Background(), "XXX", "2024-01-10", 0); !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected unknown team, got %v", err)
	}
	if _, err := svc.RecentForm(context.Background(), "BOS", "01/10/2024", 0); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected invalid date, got %v", err)
	}
}

func TestRecentFormSkipsFetchBeforeSeasonStart(t *testing.T) {
	p := &teststubs.StubProvider{}
	svc, _ := newService(p)
	if _, err := svc.RecentForm(context.Background(), "BOS", "2024-10-01", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LogCalls.Load() != 0 {
		t.Fatalf("expected no fetch for an empty window")
	}
}

func TestPriorIsCached(t *testing.T) {
	p := &teststubs.StubProvider{Logs: map[teams.Code][]games.Game{"BOS": {
		finalGame("g1", "2023-01-05", "BOS", "NYK", 110, 100),
		finalGame("g2", "2023-02-05", "LAL", "BOS", 104, 100),
	}}}
	svc, rec := newService(p)

	first, err := svc.Prior(context.Background(), "BOS", 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := svc.Prior(context.Background(), "BOS", 2023)

	if first != second || first.GamesPlayed != 2 || first.AverageMargin != 3 {
		t.Fatalf("unexpected priors %+v / %+v", first, second)
	}
	if p.LogCalls.Load() != 1 {
		t.Fatalf("expected one fetch, got %d", p.LogCalls.Load())
	}
	if hits, misses := rec.CacheLookups(); hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
	q := p.Queries()[0]
	if q.StartDate != "2022-10-01" || q.EndDate != "2023-06-30" {
		t.Fatalf("unexpected season window %+v", q)
	}
}

func TestPriorWrapsProviderError(t *testing.T) {
	boom := errors.New("boom")
	svc, _ := newService(&teststubs.StubProvider{Err: boom})
	if _, err := svc.Prior(context.Background(), "BOS", 2023); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestRecentNudge(t *testing.T) {
	p := &teststubs.StubProvider{Logs: map[teams.Code][]games.Game{"BOS": {
		finalGame("g1", "2024-01-05", "BOS", "NYK", 110, 100),
		finalGame("g2", "2023-11-01", "BOS", "NYK", 130, 100),
	}}}
	svc, _ := newService(p)

	nudge, played, err := svc.RecentNudge(context.Background(), "BOS", "2024-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if played != 1 || math.Abs(nudge-2) > 1e-9 {
		t.Fatalf("expected nudge 2 over 1 game, got %v over %d", nudge, played)
	}
	if q := p.Queries()[0]; q.StartDate != "2023-12-11" || q.EndDate != "2024-01-09" {
		t.Fatalf("unexpected nudge window %+v", q)
	}
}

func TestMatchupWithoutGamesIsPriorOnly(t *testing.T) {
	svc, rec := newService(&teststubs.StubProvider{})

	report, err := svc.Matchup(context.Background(), "BOS", "NYK", "2024-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.Logistic(2.3/6.5, 50)
	if report.Estimate.Mode != model.ModePrior || math.Abs(report.Estimate.HomeWinProbability-want) > 1e-12 {
		t.Fatalf("expected prior-only estimate %v, got %+v", want, report.Estimate)
	}
	if report.SeasonEndYear != 2023 || report.Anchor != "2024-01-10" {
		t.Fatalf("unexpected report header %+v", report)
	}
	if rec.Predictions("prior") != 1 {
		t.Fatalf("expected prediction recorded")
	}
}

func TestMatchupValidates(t *testing.T) {
	svc, _ := newService(&teststubs.StubProvider{})
	if _, err := svc.Matchup(context.Background(), "BOS", "bos", "2024-01-10"); !errors.Is(err, ErrSameTeam) {
		t.Fatalf("expected same team error, got %v", err)
	}
	if _, err := svc.Matchup(context.Background(), "BOS", "ZZZ", "2024-01-10"); !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected unknown team error, got %v", err)
	}
	if _, err := svc.Matchup(context.Background(), "BOS", "NYK", ""); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected invalid date error, got %v", err)
	}
}

func TestMatchupPropagatesProviderError(t *testing.T) {
	boom := errors.New("boom")
	svc, _ := newService(&teststubs.StubProvider{Err: boom})
	if _, err := svc.Matchup(context.Background(), "BOS", "NYK", "2024-01-10"); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestMatchupMidSeasonLeansOnRecentForm(t *testing.T) {
	svc := NewService(fixture.New(), nil, nil, nil, nil)

	report, err := svc.Matchup(context.Background(), "BOS", "NYK", "2024-02-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Home.GamesPlayed != 10 || report.Away.GamesPlayed != 10 {
		t.Fatalf("expected full windows, got %d/%d", report.Home.GamesPlayed, report.Away.GamesPlayed)
	}
	if report.Estimate.Mode != model.ModeRecent || report.Estimate.Confidence != 0.8 {
		t.Fatalf("expected recent mode, got %+v", report.Estimate)
	}
	if report.HomePrior.GamesPlayed == 0 || report.AwayPrior.NudgeGames == 0 {
		t.Fatalf("expected priors and nudges, got %+v / %+v", report.HomePrior, report.AwayPrior)
	}
	p := report.Estimate.HomeWinProbability
	if p <= 0 || p >= 1 {
		t.Fatalf("probability out of range: %v", p)
	}
}
