package model

import (
	"errors"
	"fmt"
)

// Params holds the model's tuning constants. The defaults are the values the model was
// published with; changing them changes every estimate.
type Params struct {
	HomeCourtPoints    float64   `yaml:"homeCourtPoints"`
	Scale              float64   `yaml:"scale"`
	RecentScale        float64   `yaml:"recentScale"`
	Decay              float64   `yaml:"decay"`
	WindowSize         int       `yaml:"windowSize"`
	NudgeWeight        float64   `yaml:"nudgeWeight"`
	NudgeDays          int       `yaml:"nudgeDays"`
	PriorConfidence    float64   `yaml:"priorConfidence"`
	AlphaSteps         []float64 `yaml:"alphaSteps"`
	RecentModeAlpha    float64   `yaml:"recentModeAlpha"`
	LogitInputClamp    float64   `yaml:"logitInputClamp"`
	ProbabilityEpsilon float64   `yaml:"probabilityEpsilon"`
}

// DefaultParams returns the published constants.
func DefaultParams() Params {
	return Params{
		HomeCourtPoints:    2.3,
		Scale:              6.5,
		RecentScale:        3.0,
		Decay:              0.85,
		WindowSize:         10,
		NudgeWeight:        0.2,
		NudgeDays:          30,
		PriorConfidence:    0.25,
		AlphaSteps:         []float64{0, 0.25, 0.40, 0.55, 0.70, 0.80},
		RecentModeAlpha:    0.8,
		LogitInputClamp:    50,
		ProbabilityEpsilon: 1e-9,
	}
}

// Validate reports the first invalid constant.
func (p Params) Validate() error {
	switch {
	case p.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %v", p.Scale)
	case p.RecentScale <= 0:
		return fmt.Errorf("recentScale must be positive, got %v", p.RecentScale)
	case p.Decay <= 0 || p.Decay > 1:
		return fmt.Errorf("decay must be in (0,1], got %v", p.Decay)
	case p.WindowSize <= 0:
		return fmt.Errorf("windowSize must be positive, got %d", p.WindowSize)
	case p.NudgeDays <= 0:
		return fmt.Errorf("nudgeDays must be positive, got %d", p.NudgeDays)
	case p.NudgeWeight < 0:
		return fmt.Errorf("nudgeWeight must not be negative, got %v", p.NudgeWeight)
	case p.PriorConfidence < 0 || p.PriorConfidence > 1:
		return fmt.Errorf("priorConfidence must be in [0,1], got %v", p.PriorConfidence)
	case p.RecentModeAlpha < 0 || p.RecentModeAlpha > 1:
		return fmt.Errorf("recentModeAlpha must be in [0,1], got %v", p.RecentModeAlpha)
	case p.LogitInputClamp <= 0:
		return fmt.Errorf("logitInputClamp must be positive, got %v", p.LogitInputClamp)
	case p.ProbabilityEpsilon <= 0 || p.ProbabilityEpsilon >= 0.5:
		return fmt.Errorf("probabilityEpsilon must be in (0,0.5), got %v", p.ProbabilityEpsilon)
	case len(p.AlphaSteps) == 0:
		return errors.New("alphaSteps must not be empty")
	}
	for i, step := range p.AlphaSteps {
		if step < 0 || step > 1 {
			return fmt.Errorf("alphaSteps[%d] must be in [0,1], got %v", i, step)
		}
		if i > 0 && step < p.AlphaSteps[i-1] {
			return fmt.Errorf("alphaSteps must be non-decreasing at index %d", i)
		}
	}
	return nil
}

// Alpha returns the recent-form weight for nEff games available to both teams.
// Counts past the end of the table use the last step.
func (p Params) Alpha(nEff int) float64 {
	if len(p.AlphaSteps) == 0 {
		return 0
	}
	if nEff < 0 {
		nEff = 0
	}
	if nEff >= len(p.AlphaSteps) {
		nEff = len(p.AlphaSteps) - 1
	}
	return p.AlphaSteps[nEff]
}
