package ds

import (
	"context"

	"github.com/evolvelab/gopop/pkg/core"
)

// HookeJeeves is pattern search: an exploratory sweep probes each coordinate
// in both directions, a successful sweep triggers a pattern move that
// extrapolates along the improving direction, and a failed sweep around the
// base point shrinks the step.
//
// Reference: Hooke, R. and Jeeves, T.A., 1961. "Direct search" solution of
// numerical and statistical problems. Journal of the ACM, 8(2), pp.212-229.
type HookeJeeves struct {
	*core.BaseOptimizer

	sigma     float64
	stepDecay float64

	start []float64
	base  []float64
	baseY float64

	// probe is where the next exploratory sweep starts: the base point, or
	// the extrapolated pattern point after a successful sweep.
	probe        []float64
	probePattern bool
}

// NewHookeJeeves validates the configuration and builds a pattern search
// optimizer.
func NewHookeJeeves(problem *core.Problem, config Config, options core.Options) (*HookeJeeves, error) {
	base, err := core.NewBaseOptimizer("HookeJeeves", problem, options)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(problem, config); err != nil {
		return nil, err
	}

	o := &HookeJeeves{
		BaseOptimizer: base,
		sigma:         config.Sigma,
		stepDecay:     config.StepDecay,
	}
	if o.stepDecay == 0 {
		o.stepDecay = 0.5
	}
	if config.X != nil {
		o.start = make([]float64, problem.Dim)
		copy(o.start, config.X)
	}
	return o, nil
}

// Sigma returns the current exploratory step size.
func (o *HookeJeeves) Sigma() float64 { return o.sigma }

func (o *HookeJeeves) initialize() {
	o.base = startPoint(o.BaseOptimizer, o.start)
	o.baseY = o.Evaluate(o.base)
	o.probe = make([]float64, len(o.base))
	copy(o.probe, o.base)
	o.probePattern = false
}

// sweep greedily probes +sigma then -sigma along every coordinate, keeping
// each improvement, and returns the resulting point with the fitness values
// spent on the way.
func (o *HookeJeeves) sweep(start []float64, startY float64) ([]float64, float64, []float64) {
	problem := o.Problem()
	x := make([]float64, len(start))
	copy(x, start)
	fx := startY

	spent := make([]float64, 0, 2*problem.Dim)
	for i := range x {
		for _, sign := range []float64{1, -1} {
			trial := make([]float64, len(x))
			copy(trial, x)
			trial[i] += sign * o.sigma
			trial = core.Clamp(trial, problem.LowerBound, problem.UpperBound)

			y := o.Evaluate(trial)
			spent = append(spent, y)
			if y < fx {
				x, fx = trial, y
				break
			}
		}
	}
	return x, fx, spent
}

// iterate performs one exploratory sweep and the bookkeeping that follows
// it, returning the fitness values spent.
func (o *HookeJeeves) iterate() []float64 {
	problem := o.Problem()

	startY := o.baseY
	var spent []float64
	if o.probePattern {
		startY = o.Evaluate(o.probe)
		spent = append(spent, startY)
	}
	x, fx, sweepSpent := o.sweep(o.probe, startY)
	spent = append(spent, sweepSpent...)

	if fx < o.baseY {
		pattern := make([]float64, len(x))
		for j := range pattern {
			pattern[j] = 2*x[j] - o.base[j]
		}
		o.probe = core.Clamp(pattern, problem.LowerBound, problem.UpperBound)
		o.probePattern = true
		o.base, o.baseY = x, fx
		return spent
	}

	// The sweep failed. A failed pattern probe falls back to the base; a
	// failed sweep around the base itself means the step is too large.
	if !o.probePattern {
		o.sigma *= o.stepDecay
	}
	o.probe = make([]float64, len(o.base))
	copy(o.probe, o.base)
	o.probePattern = false
	return spent
}

// Optimize runs the pattern search loop until a stopping condition holds.
func (o *HookeJeeves) Optimize(ctx context.Context) (*core.Results, error) {
	o.Start()
	o.initialize()

	y := []float64{o.baseY}
	var err error
	for {
		if err = o.CheckContext(ctx); err != nil {
			break
		}
		if o.CheckTermination() {
			break
		}
		y = o.iterate()
		o.PrintVerboseInfo(ctx, y, false)
		o.AdvanceGeneration()
	}
	o.PrintVerboseInfo(ctx, y, true)

	results := o.CollectBase()
	results.Extra["sigma"] = o.sigma
	return results, err
}
