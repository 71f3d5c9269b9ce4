// Package sa implements simulated annealing over continuous search spaces.
// Candidates are drawn from a Gaussian neighborhood of the current point and
// accepted by the Metropolis criterion under a cooling temperature schedule.
package sa

import (
	"context"
	"math"

	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

// Config carries the simulated annealing settings.
type Config struct {
	// X is the starting point. When nil the start is drawn uniformly from
	// the initialization bounds.
	X []float64
	// Sigma is the standard deviation of the Gaussian neighborhood. Must be
	// positive.
	Sigma float64
	// Schedule controls the temperature per iteration. Nil resolves to an
	// exponential schedule from 100 down to 1e-8.
	Schedule Schedule
}

// SA is a single-state annealing optimizer. Each iteration spends one
// objective evaluation; the temperature schedule spans the evaluation budget.
//
// Reference: Kirkpatrick, S., Gelatt, C.D. and Vecchi, M.P., 1983.
// Optimization by simulated annealing. Science, 220(4598), pp.671-680.
type SA struct {
	*core.BaseOptimizer

	sigma    float64
	schedule Schedule

	x           []float64
	currentY    float64
	temperature float64
}

// NewSA validates the configuration and builds an SA optimizer.
func NewSA(problem *core.Problem, config Config, options core.Options) (*SA, error) {
	base, err := core.NewBaseOptimizer("SA", problem, options)
	if err != nil {
		return nil, err
	}

	if config.Sigma <= 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "neighborhood sigma must be positive"),
			errors.Fields{"sigma": config.Sigma})
	}
	if config.X != nil && len(config.X) != problem.Dim {
		return nil, errors.WithFields(
			errors.New(errors.DimensionMismatch, "starting point length does not match problem dimensionality"),
			errors.Fields{"dim": problem.Dim, "x": len(config.X)})
	}

	schedule := config.Schedule
	if schedule == nil {
		schedule = ExponentialSchedule{Start: 100, End: 1e-8}
	}

	o := &SA{
		BaseOptimizer: base,
		sigma:         config.Sigma,
		schedule:      schedule,
	}
	if config.X != nil {
		o.x = make([]float64, problem.Dim)
		copy(o.x, config.X)
	}
	return o, nil
}

// Sigma returns the neighborhood standard deviation.
func (o *SA) Sigma() float64 { return o.sigma }

// initialize places the starting point and spends one evaluation on it.
func (o *SA) initialize() {
	if o.x == nil {
		lower, upper := o.Problem().InitBounds()
		o.x = core.UniformSample(o.RngInit(), lower, upper)
	}
	o.currentY = o.Evaluate(o.x)
}

// neighbor draws a candidate from the Gaussian neighborhood of the current
// point, clamped to the search bounds.
func (o *SA) neighbor() []float64 {
	problem := o.Problem()
	rng := o.RngOpt()

	candidate := make([]float64, problem.Dim)
	for i := range candidate {
		candidate[i] = o.x[i] + o.sigma*rng.NormFloat64()
	}
	return core.Clamp(candidate, problem.LowerBound, problem.UpperBound)
}

// accept applies the Metropolis criterion: better candidates always, worse
// ones with probability exp(-(cand-curr)/temp).
func (o *SA) accept(curr, cand, temp float64) bool {
	if cand < curr {
		return true
	}
	if temp <= 0 {
		return false
	}
	return o.RngOpt().Float64() < math.Exp(-(cand-curr)/temp)
}

// totalIterations maps the evaluation budget onto the schedule's horizon.
// The starting point costs one evaluation before the loop begins.
func (o *SA) totalIterations() int {
	if n := o.Opts().MaxFunctionEvaluations; n > 1 {
		return n - 1
	}
	return 0
}

// Optimize runs the annealing loop until a stopping condition holds.
func (o *SA) Optimize(ctx context.Context) (*core.Results, error) {
	o.Start()
	o.initialize()
	total := o.totalIterations()

	var err error
	for {
		if err = o.CheckContext(ctx); err != nil {
			break
		}
		if o.CheckTermination() {
			break
		}
		o.temperature = o.schedule.Temperature(o.Generation(), total)
		candidate := o.neighbor()
		y := o.Evaluate(candidate)
		o.PrintVerboseInfo(ctx, []float64{y}, false)
		o.AdvanceGeneration()
		if o.accept(o.currentY, y, o.temperature) {
			o.x = candidate
			o.currentY = y
		}
	}
	o.PrintVerboseInfo(ctx, []float64{o.currentY}, true)

	results := o.CollectBase()
	results.Extra["temperature"] = o.temperature
	return results, err
}
