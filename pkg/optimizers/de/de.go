// Package de implements differential evolution, a population-based optimizer
// that perturbs candidates with scaled differences of other population
// members and keeps a trial only when it does not lose to its parent.
package de

import (
	"context"

	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

const (
	defaultNIndividuals = 100
	defaultF            = 0.5
	defaultCR           = 0.9
)

// Config carries the differential evolution settings. Zero values resolve to
// the classic defaults.
type Config struct {
	// NIndividuals is the population size. Zero resolves to 100; at least
	// four individuals are required for the rand/1 difference scheme.
	NIndividuals int
	// F is the differential weight scaling the difference vector. Zero
	// resolves to 0.5.
	F float64
	// CR is the binomial crossover probability. Zero resolves to 0.9.
	CR float64
}

// DE is the classic DE/rand/1/bin optimizer of Storn and Price.
//
// Reference: Storn, R. and Price, K., 1997. Differential evolution - a simple
// and efficient heuristic for global optimization over continuous spaces.
// Journal of Global Optimization, 11(4), pp.341-359.
type DE struct {
	*core.BaseOptimizer

	nIndividuals int
	f            float64
	cr           float64

	x [][]float64
	y []float64
}

// NewDE validates the configuration and builds a DE optimizer.
func NewDE(problem *core.Problem, config Config, options core.Options) (*DE, error) {
	base, err := core.NewBaseOptimizer("DE", problem, options)
	if err != nil {
		return nil, err
	}

	n := config.NIndividuals
	if n == 0 {
		n = defaultNIndividuals
	}
	if n < 4 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "differential evolution requires at least four individuals"),
			errors.Fields{"n_individuals": n})
	}

	f := config.F
	if f == 0 {
		f = defaultF
	}
	if f < 0 || f > 2 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "differential weight must lie in [0, 2]"),
			errors.Fields{"f": f})
	}

	cr := config.CR
	if cr == 0 {
		cr = defaultCR
	}
	if cr < 0 || cr > 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "crossover probability must lie in [0, 1]"),
			errors.Fields{"cr": cr})
	}

	return &DE{
		BaseOptimizer: base,
		nIndividuals:  n,
		f:             f,
		cr:            cr,
	}, nil
}

// NIndividuals returns the population size.
func (o *DE) NIndividuals() int { return o.nIndividuals }

// F returns the differential weight.
func (o *DE) F() float64 { return o.f }

// CR returns the crossover probability.
func (o *DE) CR() float64 { return o.cr }

// initialize draws the population uniformly from the initialization bounds
// and evaluates it.
func (o *DE) initialize() {
	problem := o.Problem()
	lower, upper := problem.InitBounds()

	o.x = make([][]float64, o.nIndividuals)
	for i := range o.x {
		o.x[i] = core.UniformSample(o.RngInit(), lower, upper)
	}
	o.y = o.EvaluateBatch(o.x)
}

// trials builds one generation of trial vectors: for each parent a mutant
// base + F*(difference of two others) is crossed over dimension-wise, with
// one dimension always taken from the mutant. Trials are clamped to the
// search bounds.
func (o *DE) trials() [][]float64 {
	problem := o.Problem()
	dim := problem.Dim
	rng := o.RngOpt()

	trials := make([][]float64, o.nIndividuals)
	for i := range trials {
		r1 := i
		for r1 == i {
			r1 = rng.Intn(o.nIndividuals)
		}
		r2 := i
		for r2 == i || r2 == r1 {
			r2 = rng.Intn(o.nIndividuals)
		}
		r3 := i
		for r3 == i || r3 == r1 || r3 == r2 {
			r3 = rng.Intn(o.nIndividuals)
		}

		jrand := rng.Intn(dim)
		trial := make([]float64, dim)
		for j := 0; j < dim; j++ {
			if rng.Float64() < o.cr || j == jrand {
				trial[j] = o.x[r1][j] + o.f*(o.x[r2][j]-o.x[r3][j])
			} else {
				trial[j] = o.x[i][j]
			}
		}
		trials[i] = core.Clamp(trial, problem.LowerBound, problem.UpperBound)
	}
	return trials
}

// selectSurvivors keeps each trial that does not lose to its parent.
func (o *DE) selectSurvivors(trials [][]float64, yTrials []float64) {
	for i := range trials {
		if yTrials[i] <= o.y[i] {
			o.x[i] = trials[i]
			o.y[i] = yTrials[i]
		}
	}
}

// Optimize runs the generational loop until a stopping condition holds. The
// initial population already consumes evaluations, so stopping conditions are
// checked before each new generation is sampled.
func (o *DE) Optimize(ctx context.Context) (*core.Results, error) {
	o.Start()
	o.initialize()

	var err error
	for {
		if err = o.CheckContext(ctx); err != nil {
			break
		}
		if o.CheckTermination() {
			break
		}
		o.PrintVerboseInfo(ctx, o.y, false)
		trials := o.trials()
		yTrials := o.EvaluateBatch(trials)
		o.AdvanceGeneration()
		o.selectSurvivors(trials, yTrials)
	}
	o.PrintVerboseInfo(ctx, o.y, true)
	return o.CollectBase(), err
}
