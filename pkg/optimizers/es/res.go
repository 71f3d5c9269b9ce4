package es

import (
	"context"
	"math"

	"github.com/evolvelab/gopop/pkg/core"
)

// RES implements Rechenberg's (1+1) evolution strategy with the 1/5th
// success rule: a single offspring per generation is sampled around the
// parent, the step size grows after a success and shrinks after a failure so
// that roughly one in five offspring improves on its parent. With a single
// offspring there are no recombination weights; the shared base keeps its
// degenerate zero value.
//
// Reference: Rechenberg, I., 1984. The evolution strategy. A mathematical
// model of darwinian evolution. In Synergetics (pp. 122-132). Springer.
type RES struct {
	*ES

	// parentY is the fitness of the current parent (the mean).
	parentY float64
}

// NewRES builds a RES optimizer. The offspring population size is fixed at
// one. EtaSigma defaults to 1/sqrt(dim+1).
func NewRES(problem *core.Problem, config Config, options core.Options) (*RES, error) {
	// A single offspring per generation; mu = floor(1/2) = 0 stays
	// degenerate until the first restart doubles lambda.
	config.NIndividuals = 1
	config.NParents = 0

	base, err := NewES("RES", problem, config, options)
	if err != nil {
		return nil, err
	}

	o := &RES{ES: base, parentY: math.Inf(1)}
	if o.etaSigma == 0 {
		o.etaSigma = 1 / math.Sqrt(float64(problem.Dim)+1)
	}
	return o, nil
}

// initialize draws the parent and spends one evaluation on it.
func (o *RES) initialize(isRestart bool) {
	o.mean = o.InitializeMean(isRestart)
	o.parentY = o.Evaluate(o.mean)
}

// iterate samples and evaluates a single offspring around the parent.
func (o *RES) iterate() ([]float64, float64) {
	dim := o.Problem().Dim
	rng := o.RngOpt()

	x := make([]float64, dim)
	for i := range x {
		x[i] = o.mean[i] + o.sigma*rng.NormFloat64()
	}
	return x, o.Evaluate(x)
}

// updateDistribution applies the 1/5th success rule to sigma and replaces
// the parent when the offspring is at least as good.
func (o *RES) updateDistribution(x []float64, y float64) {
	success := 0.0
	if y < o.parentY {
		success = 1
	}
	o.sigma *= math.Exp(o.etaSigma * (success - 0.2))

	if y <= o.parentY {
		copy(o.mean, x)
		o.parentY = y
	}
}

// Optimize runs the generation loop until a stopping condition holds. The
// shared restart mechanism applies unchanged: the offspring count doubles on
// paper but the loop always samples one offspring, so a restart's practical
// effect is the sigma reset, the fresh parent, and the larger stagnation
// window.
func (o *RES) Optimize(ctx context.Context) (*core.Results, error) {
	o.Start()
	o.initialize(false)

	var err error
	batch := []float64{math.Inf(1)}
	for {
		if err = o.CheckContext(ctx); err != nil {
			break
		}
		x, y := o.iterate()
		batch[0] = y
		if o.CheckTermination() {
			break
		}
		o.PrintVerboseInfo(ctx, batch, false)
		o.AdvanceGeneration()
		o.updateDistribution(x, y)
		if o.RestartInitialize() {
			// The fresh parent spends an evaluation of its own.
			o.initialize(true)
			if o.CheckTermination() {
				break
			}
		}
	}
	o.PrintVerboseInfo(ctx, batch, true)
	return o.CollectResults(), err
}
