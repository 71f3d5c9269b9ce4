package core

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/evolvelab/gopop/pkg/errors"
	"github.com/evolvelab/gopop/pkg/logging"
)

// Optimizer is the interface every optimization algorithm implements.
type Optimizer interface {
	// Name returns the algorithm's short identifier (e.g. "CSAES").
	Name() string
	// Optimize runs the algorithm until a stopping condition is met and
	// returns the collected results. On context cancellation it returns the
	// partial results together with a Canceled error.
	Optimize(ctx context.Context) (*Results, error)
}

// BaseOptimizer provides the run bookkeeping shared by every algorithm:
// objective evaluation with counting and best-so-far tracking, split random
// sources for initialization and optimization, termination checks, fitness
// recording, and verbose progress output. Concrete optimizers embed it and
// drive their own generation loops.
type BaseOptimizer struct {
	name    string
	problem *Problem
	options Options

	rngInit *rand.Rand
	rngOpt  *rand.Rand

	startTime   time.Time
	termination Termination

	nEvaluations int
	generation   int
	bestY        float64
	bestX        []float64
	fitness      []FitnessRecord

	// Stopping threshold already converted to minimization sense.
	fitnessThreshold float64

	printedEvaluations int

	logger *logging.Logger
}

// NewBaseOptimizer validates the problem, resolves option defaults, and
// prepares the run state. The master seed is split into one stream for
// initialization and one for the optimization loop, so restarts re-draw
// initial state independently of the sampling sequence.
func NewBaseOptimizer(name string, problem *Problem, options Options) (*BaseOptimizer, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	options = options.withDefaults()

	master := rand.New(rand.NewSource(options.Seed))
	rngInit := rand.New(rand.NewSource(master.Int63()))
	rngOpt := rand.New(rand.NewSource(master.Int63()))

	threshold := options.FitnessThreshold
	if problem.Maximize && !math.IsInf(threshold, -1) {
		threshold = -threshold
	}

	return &BaseOptimizer{
		name:             name,
		problem:          problem,
		options:          options,
		rngInit:          rngInit,
		rngOpt:           rngOpt,
		termination:      TerminationNone,
		bestY:            math.Inf(1),
		fitnessThreshold: threshold,
		logger:           logging.GetLogger(),
	}, nil
}

// Name returns the algorithm identifier.
func (o *BaseOptimizer) Name() string { return o.name }

// Problem returns the problem being optimized.
func (o *BaseOptimizer) Problem() *Problem { return o.problem }

// Opts returns the resolved run options.
func (o *BaseOptimizer) Opts() Options { return o.options }

// RngInit returns the random source reserved for (re)initialization draws.
func (o *BaseOptimizer) RngInit() *rand.Rand { return o.rngInit }

// RngOpt returns the random source driving the optimization loop.
func (o *BaseOptimizer) RngOpt() *rand.Rand { return o.rngOpt }

// Logger returns the logger entries are written through.
func (o *BaseOptimizer) Logger() *logging.Logger { return o.logger }

// Start stamps the beginning of the run. Call once before the first
// generation.
func (o *BaseOptimizer) Start() {
	o.startTime = time.Now()
}

// Generation returns the number of completed generations.
func (o *BaseOptimizer) Generation() int { return o.generation }

// AdvanceGeneration increments the generation counter. Restarted generations
// count like any other.
func (o *BaseOptimizer) AdvanceGeneration() { o.generation++ }

// NEvaluations returns the number of objective evaluations spent so far.
func (o *BaseOptimizer) NEvaluations() int { return o.nEvaluations }

// BestY returns the best fitness observed so far in minimization sense,
// regardless of the problem's objective sense. Algorithm logic (stagnation
// tests, threshold comparisons) always works on this value.
func (o *BaseOptimizer) BestY() float64 { return o.bestY }

// BestX returns a copy of the best candidate observed so far.
func (o *BaseOptimizer) BestX() []float64 {
	if o.bestX == nil {
		return nil
	}
	x := make([]float64, len(o.bestX))
	copy(x, o.bestX)
	return x
}

// DisplayY converts an internal fitness value to the problem's objective
// sense for reporting.
func (o *BaseOptimizer) DisplayY(y float64) float64 {
	if o.problem.Maximize {
		return -y
	}
	return y
}

// Evaluate spends one objective evaluation on x, updating the evaluation
// count, the best-so-far pair, and the recorded trajectory. The returned
// value is in minimization sense.
func (o *BaseOptimizer) Evaluate(x []float64) float64 {
	y := o.problem.Objective(x)
	if o.problem.Maximize {
		y = -y
	}
	o.recordEvaluation(x, y)
	return y
}

func (o *BaseOptimizer) recordEvaluation(x []float64, y float64) {
	o.nEvaluations++
	if y < o.bestY {
		o.bestY = y
		if o.bestX == nil {
			o.bestX = make([]float64, len(x))
		}
		copy(o.bestX, x)
	}
	if f := o.options.SavingFitness; f > 0 && (o.nEvaluations == 1 || o.nEvaluations%f == 0) {
		o.fitness = append(o.fitness, FitnessRecord{
			Evaluations: o.nEvaluations,
			Y:           o.DisplayY(y),
		})
	}
}

// EvaluateBatch evaluates a whole offspring batch, in parallel when Workers
// allows it. Objective calls may run concurrently but all bookkeeping is a
// sequential reduction afterwards, so evaluation counts, the best-so-far
// pair, and the recorded trajectory match sequential evaluation exactly.
func (o *BaseOptimizer) EvaluateBatch(xs [][]float64) []float64 {
	y := make([]float64, len(xs))

	if o.options.Workers > 1 && len(xs) > 1 {
		p := pool.New().WithMaxGoroutines(o.options.Workers)
		for i := range xs {
			i := i
			p.Go(func() {
				y[i] = o.problem.Objective(xs[i])
			})
		}
		p.Wait()
		if o.problem.Maximize {
			for i := range y {
				y[i] = -y[i]
			}
		}
		for i := range xs {
			o.recordEvaluation(xs[i], y[i])
		}
		return y
	}

	for i := range xs {
		y[i] = o.Evaluate(xs[i])
	}
	return y
}

// CheckTermination evaluates the stopping conditions in fixed order:
// evaluation budget, fitness threshold, wall-clock budget. Once a condition
// holds the termination reason latches and the method keeps returning true.
func (o *BaseOptimizer) CheckTermination() bool {
	if o.termination != TerminationNone {
		return true
	}
	if n := o.options.MaxFunctionEvaluations; n > 0 && o.nEvaluations >= n {
		o.termination = TerminationMaxEvaluations
		return true
	}
	if o.bestY <= o.fitnessThreshold {
		o.termination = TerminationFitnessThreshold
		return true
	}
	if d := o.options.MaxRuntime; d > 0 && time.Since(o.startTime) >= d {
		o.termination = TerminationMaxRuntime
		return true
	}
	return false
}

// CheckContext records a cancellation as the termination reason and returns
// the wrapped context error, or nil while the context is live.
func (o *BaseOptimizer) CheckContext(ctx context.Context) error {
	if err := errors.CheckContext(ctx, "optimize "+o.name); err != nil {
		o.termination = TerminationCanceled
		return err
	}
	return nil
}

// Termination returns the latched stopping condition.
func (o *BaseOptimizer) Termination() Termination { return o.termination }

// PrintVerboseInfo emits the periodic progress line: generation index, best
// fitness so far, the best of the current batch, and evaluations spent.
// Lines are emitted every Verbose generations, are never repeated for the
// same evaluation count, and force emits regardless of the schedule (used
// for the final generation).
func (o *BaseOptimizer) PrintVerboseInfo(ctx context.Context, y []float64, force bool) {
	freq := o.options.Verbose
	if freq <= 0 {
		return
	}
	if o.printedEvaluations == o.nEvaluations {
		return
	}
	if !force && o.generation%freq != 0 {
		return
	}

	minY := math.Inf(1)
	for _, v := range y {
		if v < minY {
			minY = v
		}
	}
	o.logger.Progress(ctx, o.generation, o.DisplayY(o.bestY), o.DisplayY(minY), o.nEvaluations)
	o.printedEvaluations = o.nEvaluations
}

// CollectBase assembles the family-independent part of the results. BestY is
// reported in the problem's objective sense.
func (o *BaseOptimizer) CollectBase() *Results {
	return &Results{
		BestX:                o.BestX(),
		BestY:                o.DisplayY(o.bestY),
		NFunctionEvaluations: o.nEvaluations,
		NGenerations:         o.generation,
		Runtime:              time.Since(o.startTime),
		Termination:          o.termination,
		Fitness:              o.fitness,
		Extra:                make(map[string]interface{}),
	}
}
