package model

import "math"

// Logistic returns 1/(1+e^-x) with x clamped to [-limit, limit].
func Logistic(x, limit float64) float64 {
	x = math.Max(-limit, math.Min(limit, x))
	return 1 / (1 + math.Exp(-x))
}

// Logit returns ln(p/(1-p)) with p clamped to [eps, 1-eps].
func Logit(p, eps float64) float64 {
	p = clampProbability(p, eps)
	return math.Log(p / (1 - p))
}

// ILogit is the inverse of Logit; the result is clamped to [eps, 1-eps].
func ILogit(z, eps float64) float64 {
	return clampProbability(1/(1+math.Exp(-z)), eps)
}

func clampProbability(p, eps float64) float64 {
	if math.IsNaN(p) {
		return 0.5
	}
	return math.Max(eps, math.Min(1-eps, p))
}
