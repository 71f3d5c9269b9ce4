// Package testutil provides shared fixtures for optimizer tests.
package testutil

import (
	"sync/atomic"

	"github.com/evolvelab/gopop/pkg/core"
)

// QuadraticProblem returns a convex bowl with its optimum at center and
// bounds extending halfWidth in every coordinate. Useful when a test needs a
// cheap problem whose solution sits somewhere other than the origin.
func QuadraticProblem(name string, center []float64, halfWidth float64) *core.Problem {
	c := append([]float64(nil), center...)
	dim := len(c)

	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := range c {
		lower[i] = c[i] - halfWidth
		upper[i] = c[i] + halfWidth
	}

	return &core.Problem{
		Name:       name,
		Dim:        dim,
		LowerBound: lower,
		UpperBound: upper,
		Objective: func(x []float64) float64 {
			var sum float64
			for i, v := range x {
				d := v - c[i]
				sum += d * d
			}
			return sum
		},
	}
}

// EvalCounter counts objective calls. Wrapped objectives may be evaluated
// from parallel workers.
type EvalCounter struct {
	n atomic.Int64
}

// Wrap returns an objective that forwards to obj while counting each call.
func (c *EvalCounter) Wrap(obj core.Objective) core.Objective {
	return func(x []float64) float64 {
		c.n.Add(1)
		return obj(x)
	}
}

// Count returns the number of calls seen so far.
func (c *EvalCounter) Count() int { return int(c.n.Load()) }
