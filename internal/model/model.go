// Package model holds the win-probability edge model: recent-form summaries, prior-season
// margins, logit-space blending and verdict scoring. Everything here is pure.
package model

// Model evaluates matchups with a fixed parameter set. It is safe for concurrent use.
type Model struct {
	params Params
}

// New returns a Model using params. Invalid params fall back to DefaultParams.
func New(params Params) *Model {
	if err := params.Validate(); err != nil {
		params = DefaultParams()
	}
	return &Model{params: params}
}

// Default returns a Model with the published constants.
func Default() *Model {
	return &Model{params: DefaultParams()}
}

// Params returns a copy of the model's parameters.
func (m *Model) Params() Params {
	p := m.params
	p.AlphaSteps = append([]float64(nil), m.params.AlphaSteps...)
	return p
}

func (m *Model) logistic(x float64) float64 {
	return clampProbability(Logistic(x, m.params.LogitInputClamp), m.params.ProbabilityEpsilon)
}
