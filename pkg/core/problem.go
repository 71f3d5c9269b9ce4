package core

import (
	"math/rand"

	"github.com/evolvelab/gopop/pkg/errors"
)

// Objective maps a candidate solution to a scalar fitness value.
// All optimizers minimize; see Problem.Maximize for the maximization case.
type Objective func(x []float64) float64

// Problem describes a continuous black-box optimization problem: the
// objective function, its dimensionality, and the box constraints of the
// search space. Initialization bounds may narrow where the first mean or
// population is drawn from without narrowing the search itself.
type Problem struct {
	// Name identifies the problem in logs and result records.
	Name string

	// Dim is the dimensionality of the search space.
	Dim int

	// LowerBound and UpperBound define the box constraints, one entry per
	// coordinate.
	LowerBound []float64
	UpperBound []float64

	// InitLowerBound and InitUpperBound optionally restrict where initial
	// candidates are drawn. When nil, the search bounds are used.
	InitLowerBound []float64
	InitUpperBound []float64

	// Objective evaluates a candidate. Must not be nil.
	Objective Objective

	// Maximize inverts the objective sense. Internally every optimizer still
	// minimizes; the objective is negated on evaluation and the reported best
	// fitness is negated back when results are collected.
	Maximize bool
}

// Validate checks that the problem definition is internally consistent.
func (p *Problem) Validate() error {
	if p == nil {
		return errors.New(errors.InvalidInput, "problem must not be nil")
	}
	if p.Dim < 1 {
		return errors.WithFields(
			errors.New(errors.InvalidInput, "problem dimensionality must be positive"),
			errors.Fields{"dim": p.Dim})
	}
	if p.Objective == nil {
		return errors.New(errors.InvalidInput, "problem objective must not be nil")
	}
	if len(p.LowerBound) != p.Dim || len(p.UpperBound) != p.Dim {
		return errors.WithFields(
			errors.New(errors.DimensionMismatch, "bound length does not match problem dimensionality"),
			errors.Fields{
				"dim":   p.Dim,
				"lower": len(p.LowerBound),
				"upper": len(p.UpperBound),
			})
	}
	for i := 0; i < p.Dim; i++ {
		if p.LowerBound[i] >= p.UpperBound[i] {
			return errors.WithFields(
				errors.New(errors.InvalidInput, "lower bound must be below upper bound"),
				errors.Fields{"coordinate": i})
		}
	}
	if (p.InitLowerBound == nil) != (p.InitUpperBound == nil) {
		return errors.New(errors.InvalidInput, "initialization bounds must be set together")
	}
	if p.InitLowerBound != nil {
		if len(p.InitLowerBound) != p.Dim || len(p.InitUpperBound) != p.Dim {
			return errors.New(errors.DimensionMismatch, "initialization bound length does not match problem dimensionality")
		}
		for i := 0; i < p.Dim; i++ {
			if p.InitLowerBound[i] >= p.InitUpperBound[i] {
				return errors.WithFields(
					errors.New(errors.InvalidInput, "initialization lower bound must be below upper bound"),
					errors.Fields{"coordinate": i})
			}
		}
	}
	return nil
}

// InitBounds returns the bounds initial candidates are drawn from: the
// initialization bounds when provided, otherwise the search bounds.
func (p *Problem) InitBounds() (lower, upper []float64) {
	if p.InitLowerBound != nil {
		return p.InitLowerBound, p.InitUpperBound
	}
	return p.LowerBound, p.UpperBound
}

// UniformSample draws a point uniformly at random from the box [lower, upper).
func UniformSample(rng *rand.Rand, lower, upper []float64) []float64 {
	x := make([]float64, len(lower))
	for i := range x {
		x[i] = lower[i] + rng.Float64()*(upper[i]-lower[i])
	}
	return x
}

// Clamp projects x onto the box [lower, upper] in place and returns it.
func Clamp(x, lower, upper []float64) []float64 {
	for i := range x {
		if x[i] < lower[i] {
			x[i] = lower[i]
		} else if x[i] > upper[i] {
			x[i] = upper[i]
		}
	}
	return x
}
