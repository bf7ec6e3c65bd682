package edge

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
	"github.com/preston-bernstein/nba-edge-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-edge-service/internal/teststubs"
)

func TestBacktestGradesFinalGames(t *testing.T) {
	scheduled := games.Game{ID: "s1", Date: "2024-01-10", HomeTeam: team("LAL"), AwayTeam: team("MIA"), Status: games.StatusScheduled}
	exhibition := finalGame("x1", "2024-01-10", "BOS", "RMD", 120, 80)
	p := &teststubs.StubProvider{Games: []games.Game{
		finalGame("g1", "2024-01-10", "BOS", "NYK", 110, 100),
		finalGame("g2", "2024-01-10", "DEN", "PHX", 99, 101),
		scheduled,
		exhibition,
	}}
	svc, _ := newService(p)

	report, err := svc.Backtest(context.Background(), "2024-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Games) != 2 {
		t.Fatalf("expected 2 graded games, got %+v", report.Games)
	}
	// Without prior data every home team is favoured by home court alone.
	first, second := report.Games[0], report.Games[1]
	if first.GameID != "g1" || first.Verdict.Status != model.StatusCorrect {
		t.Fatalf("expected g1 correct, got %+v", first)
	}
	if second.Verdict.Status != model.StatusIncorrect || second.Verdict.ActualWinner != model.SideAway {
		t.Fatalf("expected g2 incorrect, got %+v", second.Verdict)
	}
	if report.Accuracy.Correct != 1 || report.Accuracy.Incorrect != 1 || report.Accuracy.Rate != 0.5 {
		t.Fatalf("unexpected accuracy %+v", report.Accuracy)
	}
}

func TestBacktestErrors(t *testing.T) {
	svc, _ := newService(&teststubs.StubProvider{Err: errors.New("boom")})
	if _, err := svc.Backtest(context.Background(), "2024-01-10"); err == nil {
		t.Fatalf("expected provider error")
	}
	if _, err := svc.Backtest(context.Background(), "yesterday"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected invalid date, got %v", err)
	}
}

func TestBacktestFixtureDay(t *testing.T) {
	svc := NewService(fixture.New(), nil, nil, nil, nil)

	report, err := svc.Backtest(context.Background(), "2024-02-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Games) != 5 {
		t.Fatalf("expected 5 graded games, got %d", len(report.Games))
	}
	acc := report.Accuracy
	if acc.Correct+acc.Incorrect+acc.Indeterminate != 5 || acc.Indeterminate != 0 {
		t.Fatalf("unexpected accuracy %+v", acc)
	}
}
