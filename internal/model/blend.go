package model

import (
	"fmt"
	"math"
)

// Mode names which signals produced an estimate.
type Mode string

const (
	ModePrior  Mode = "prior"
	ModeRecent Mode = "recent"
	ModeBlend  Mode = "blend"
)

// Factor is one labelled input shown alongside an estimate.
type Factor struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProbabilityEstimate is a home-win probability strictly inside (0,1).
type ProbabilityEstimate struct {
	HomeWinProbability float64  `json:"homeWinProbability"`
	Mode               Mode     `json:"mode"`
	Confidence         float64  `json:"confidence"`
	Factors            []Factor `json:"factors"`
}

// RecentEstimate maps the difference in recent records to a probability. ok is false when
// either team has no games in the window.
func (m *Model) RecentEstimate(home, away FormSummary) (p float64, factors []Factor, ok bool) {
	if home.GamesPlayed == 0 || away.GamesPlayed == 0 {
		return 0, nil, false
	}
	edge := home.Record() - away.Record()
	factors = []Factor{
		{Label: "Recent record", Value: fmt.Sprintf("%s / %s", record(home), record(away))},
		{Label: "Recent edge", Value: fmt.Sprintf("%+d", edge)},
	}
	return m.logistic(float64(edge) / m.params.RecentScale), factors, true
}

// Blend combines recent form and priors in logit space. Without recent games for both
// teams the prior-only estimate is returned unchanged.
func (m *Model) Blend(homeForm, awayForm FormSummary, homePrior, awayPrior PriorEdge) ProbabilityEstimate {
	prior := m.PriorEstimate(homePrior, awayPrior)
	pRecent, recentFactors, ok := m.RecentEstimate(homeForm, awayForm)
	if !ok {
		return prior
	}

	alpha := m.params.Alpha(min(homeForm.GamesPlayed, awayForm.GamesPlayed))
	eps := m.params.ProbabilityEpsilon
	z := (1-alpha)*Logit(prior.HomeWinProbability, eps) + alpha*Logit(pRecent, eps)

	mode := ModeBlend
	if alpha >= m.params.RecentModeAlpha {
		mode = ModeRecent
	}
	factors := make([]Factor, 0, len(recentFactors)+len(prior.Factors)+1)
	factors = append(factors, recentFactors...)
	factors = append(factors, prior.Factors...)
	factors = append(factors, Factor{Label: "Recent weight", Value: fmt.Sprintf("%.0f%%", alpha*100)})

	return ProbabilityEstimate{
		HomeWinProbability: ILogit(z, eps),
		Mode:               mode,
		Confidence:         math.Max(m.params.PriorConfidence, alpha),
		Factors:            factors,
	}
}

func (m *Model) priorFactors(home, away PriorEdge, advantage float64) []Factor {
	factors := []Factor{
		{Label: "Prior margin", Value: fmt.Sprintf("%s %+.1f / %s %+.1f", home.Team, home.AverageMargin, away.Team, away.AverageMargin)},
		{Label: "Home court", Value: fmt.Sprintf("%+.1f pts", m.params.HomeCourtPoints)},
	}
	if home.NudgeGames > 0 || away.NudgeGames > 0 {
		factors = append(factors, Factor{Label: "Recent nudge", Value: fmt.Sprintf("%+.1f pts", home.RecentNudge-away.RecentNudge)})
	}
	return append(factors, Factor{Label: "Projected margin", Value: fmt.Sprintf("%+.1f pts", advantage)})
}

func record(s FormSummary) string {
	out := fmt.Sprintf("%d-%d", s.Wins, s.Losses)
	if s.Ties > 0 {
		out += fmt.Sprintf("-%d", s.Ties)
	}
	if s.Team != "" {
		out = string(s.Team) + " " + out
	}
	return out
}
