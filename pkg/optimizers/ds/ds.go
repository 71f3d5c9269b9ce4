// Package ds implements derivative-free direct search methods: the
// Nelder-Mead simplex and Hooke-Jeeves pattern search. Both maintain a small
// working set of points and move it through the search space using only
// objective comparisons.
package ds

import (
	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

// Config carries the direct search settings shared by the package's
// optimizers. Zero values resolve to the standard defaults.
type Config struct {
	// X is the starting point. When nil the start is drawn uniformly from
	// the initialization bounds.
	X []float64
	// Sigma is the initial step size: the spread of the starting simplex for
	// Nelder-Mead and the exploratory step for Hooke-Jeeves. Must be
	// positive.
	Sigma float64

	// Nelder-Mead coefficients. Zero values resolve to the standard
	// 1 (reflection), 2 (expansion), 0.5 (contraction), 0.5 (shrink).
	Alpha float64
	Beta  float64
	Gamma float64
	Delta float64

	// StepDecay shrinks the Hooke-Jeeves step after a failed exploratory
	// sweep around the base point. Zero resolves to 0.5.
	StepDecay float64
}

func validateConfig(problem *core.Problem, config Config) error {
	if config.Sigma <= 0 {
		return errors.WithFields(
			errors.New(errors.InvalidInput, "initial step size must be positive"),
			errors.Fields{"sigma": config.Sigma})
	}
	if config.X != nil && len(config.X) != problem.Dim {
		return errors.WithFields(
			errors.New(errors.DimensionMismatch, "starting point length does not match problem dimensionality"),
			errors.Fields{"dim": problem.Dim, "x": len(config.X)})
	}
	return nil
}

// startPoint resolves the first point of a run: a copy of the configured
// start when given, otherwise a uniform draw from the initialization bounds.
func startPoint(base *core.BaseOptimizer, configured []float64) []float64 {
	if configured != nil {
		x := make([]float64, len(configured))
		copy(x, configured)
		return x
	}
	lower, upper := base.Problem().InitBounds()
	return core.UniformSample(base.RngInit(), lower, upper)
}
