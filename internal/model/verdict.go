package model

import "github.com/preston-bernstein/nba-edge-service/internal/domain/games"

// Side is the home or away team of a game; SideNone marks no winner.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = ""
)

// VerdictStatus classifies a prediction against the final score.
type VerdictStatus string

const (
	StatusCorrect       VerdictStatus = "correct"
	StatusIncorrect     VerdictStatus = "incorrect"
	StatusIndeterminate VerdictStatus = "indeterminate"
)

const (
	ReasonTie      = "tie"
	ReasonCoinFlip = "coin flip"
	ReasonNoScore  = "no score"
)

// Verdict is the outcome of scoring one prediction.
type Verdict struct {
	PredictedWinner Side          `json:"predictedWinner,omitempty"`
	ActualWinner    Side          `json:"actualWinner,omitempty"`
	Correct         bool          `json:"correct"`
	Status          VerdictStatus `json:"status"`
	Reason          string        `json:"reason,omitempty"`
}

// Evaluate scores a home-win probability against the final score. Tied scores and
// predictions of exactly 0.5 are indeterminate and never count as wrong.
func Evaluate(homeScore, awayScore int, pHome float64) Verdict {
	var v Verdict
	switch {
	case homeScore > awayScore:
		v.ActualWinner = SideHome
	case awayScore > homeScore:
		v.ActualWinner = SideAway
	}
	switch {
	case pHome > 0.5:
		v.PredictedWinner = SideHome
	case pHome < 0.5:
		v.PredictedWinner = SideAway
	}

	switch {
	case v.ActualWinner == SideNone:
		v.Status, v.Reason = StatusIndeterminate, ReasonTie
	case v.PredictedWinner == SideNone:
		v.Status, v.Reason = StatusIndeterminate, ReasonCoinFlip
	case v.PredictedWinner == v.ActualWinner:
		v.Status, v.Correct = StatusCorrect, true
	default:
		v.Status = StatusIncorrect
	}
	return v
}

// EvaluateResult scores a prediction against a result whose scores may not parse.
func EvaluateResult(r games.Result, pHome float64) Verdict {
	home, away, ok := r.Scores()
	if !ok {
		return Verdict{Status: StatusIndeterminate, Reason: ReasonNoScore}
	}
	return Evaluate(home, away, pHome)
}

// Accuracy summarizes a set of verdicts. Indeterminate verdicts are counted but excluded
// from the accuracy rate.
type Accuracy struct {
	Correct       int     `json:"correct"`
	Incorrect     int     `json:"incorrect"`
	Indeterminate int     `json:"indeterminate"`
	Rate          float64 `json:"rate"`
}

// Tally counts verdicts by status.
func Tally(verdicts []Verdict) Accuracy {
	var a Accuracy
	for _, v := range verdicts {
		switch v.Status {
		case StatusCorrect:
			a.Correct++
		case StatusIncorrect:
			a.Incorrect++
		default:
			a.Indeterminate++
		}
	}
	if determinate := a.Correct + a.Incorrect; determinate > 0 {
		a.Rate = float64(a.Correct) / float64(determinate)
	}
	return a
}
