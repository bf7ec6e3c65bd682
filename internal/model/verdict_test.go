package model

import (
	"math"
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/games"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name       string
		home, away int
		p          float64
		status     VerdictStatus
		reason     string
	}{
		{"home win predicted", 110, 100, 0.7, StatusCorrect, ""},
		{"away win against home pick", 100, 110, 0.7, StatusIncorrect, ""},
		{"away pick correct", 100, 110, 0.3, StatusCorrect, ""},
		{"tie", 100, 100, 0.7, StatusIndeterminate, ReasonTie},
		{"tie with coin flip", 100, 100, 0.5, StatusIndeterminate, ReasonTie},
		{"coin flip", 110, 100, 0.5, StatusIndeterminate, ReasonCoinFlip},
	}
	for _, tc := range cases {
		v := Evaluate(tc.home, tc.away, tc.p)
		if v.Status != tc.status || v.Reason != tc.reason {
			t.Fatalf("%s: got %+v", tc.name, v)
		}
		if v.Correct != (tc.status == StatusCorrect) {
			t.Fatalf("%s: correct flag mismatch %+v", tc.name, v)
		}
	}
}

func TestEvaluateSides(t *testing.T) {
	v := Evaluate(110, 100, 0.7)
	if v.PredictedWinner != SideHome || v.ActualWinner != SideHome {
		t.Fatalf("unexpected sides %+v", v)
	}
	v = Evaluate(100, 100, 0.5)
	if v.PredictedWinner != SideNone || v.ActualWinner != SideNone {
		t.Fatalf("expected no sides, got %+v", v)
	}
}

func TestEvaluateResult(t *testing.T) {
	v := EvaluateResult(games.Result{HomeScore: "99", AwayScore: "101"}, 0.4)
	if v.Status != StatusCorrect {
		t.Fatalf("expected correct, got %+v", v)
	}
	v = EvaluateResult(games.Result{HomeScore: "", AwayScore: "101"}, 0.4)
	if v.Status != StatusIndeterminate || v.Reason != ReasonNoScore {
		t.Fatalf("expected missing score to be indeterminate, got %+v", v)
	}
}

func TestTally(t *testing.T) {
	a := Tally([]Verdict{
		Evaluate(110, 100, 0.7),
		Evaluate(110, 100, 0.6),
		Evaluate(100, 110, 0.6),
		Evaluate(100, 100, 0.6),
	})
	if a.Correct != 2 || a.Incorrect != 1 || a.Indeterminate != 1 {
		t.Fatalf("unexpected tally %+v", a)
	}
	if math.Abs(a.Rate-2.0/3.0) > 1e-12 {
		t.Fatalf("expected rate 2/3, got %v", a.Rate)
	}
	if empty := Tally(nil); empty.Rate != 0 {
		t.Fatalf("expected zero rate, got %v", empty.Rate)
	}
}
