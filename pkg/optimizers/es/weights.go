// Package es implements the evolution strategy family: a shared base holding
// the Gaussian search distribution state (mean, global step size), log-rank
// recombination weights, stagnation tracking, and the restart mechanism that
// doubles the offspring population, plus concrete variants built on it.
package es

import (
	"math"
)

// RecombinationWeights holds the normalized weighting coefficients applied to
// the top-mu ranked parents during recombination, together with the derived
// effective sample size.
type RecombinationWeights struct {
	// Weights are ordered best rank first, strictly positive, and sum to one.
	Weights []float64
	// MuEff is the effective sample size 1 / sum(w^2), in [1, mu].
	MuEff float64
}

// Degenerate reports whether no weights were computed (mu == 0).
func (w RecombinationWeights) Degenerate() bool {
	return len(w.Weights) == 0
}

// ComputeRecombinationWeights derives the log-rank recombination weights for
// an offspring population of size lambda with mu selected parents:
//
//	w_base = ln((lambda+1)/2)
//	raw_i  = w_base - ln(i+1)           for rank i = 0..mu-1
//	w_i    = raw_i / (mu*w_base - sum(ln(i+1)))
//
// It is a pure function of (lambda, mu). For mu == 0 the result is the
// degenerate zero value and callers must not rely on recombination. Requires
// lambda >= 1 and 0 <= mu <= lambda/2.
func ComputeRecombinationWeights(lambda, mu int) RecombinationWeights {
	if mu <= 0 {
		return RecombinationWeights{}
	}

	wBase := math.Log((float64(lambda) + 1) / 2)
	weights := make([]float64, mu)
	sumLog := 0.0
	for i := 0; i < mu; i++ {
		w := math.Log(float64(i) + 1)
		weights[i] = wBase - w
		sumLog += w
	}

	denom := float64(mu)*wBase - sumLog
	sumSq := 0.0
	for i := range weights {
		weights[i] /= denom
		sumSq += weights[i] * weights[i]
	}

	return RecombinationWeights{
		Weights: weights,
		MuEff:   1 / sumSq,
	}
}
