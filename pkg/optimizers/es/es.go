package es

import (
	"math"

	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

const (
	defaultSigmaThreshold = 1e-10
	defaultFitnessDiff    = 1e-20
	stagnationPerLambda   = 100
)

// Config carries the settings shared by every evolution strategy variant.
// Zero values resolve to defaults at construction.
type Config struct {
	// Mean is the initial mean of the Gaussian search distribution. When nil
	// it is drawn uniformly from the problem's initialization bounds. Mean
	// takes priority over X.
	Mean []float64
	// X is an alias for Mean kept for callers thinking in terms of a
	// starting point rather than a distribution.
	X []float64

	// Sigma is the initial global step size. Required, must be positive.
	Sigma float64

	// EtaMean is the learning rate of the mean update. Zero resolves to the
	// variant's default.
	EtaMean float64
	// EtaSigma is the learning rate of the step-size update. Zero resolves
	// to the variant's default.
	EtaSigma float64

	// NIndividuals is the offspring population size lambda. Zero resolves to
	// 4 + floor(3*ln(dim)).
	NIndividuals int
	// NParents is the parent population size mu. Zero resolves to
	// floor(lambda/2). Explicit values must not exceed lambda/2.
	NParents int

	// SigmaThreshold triggers a restart when sigma collapses below it.
	// Zero resolves to 1e-10.
	SigmaThreshold float64
	// Stagnation is the lookback window of the stagnation test, in
	// generations. Zero resolves to lambda*100 and is re-derived from the
	// doubled lambda after each restart.
	Stagnation int
	// FitnessDiff is the minimum decrease of the best-so-far fitness over
	// the stagnation window still counting as progress. Zero resolves to
	// 1e-20.
	FitnessDiff float64
}

// ES is the shared base of the evolution strategy family. It owns the search
// distribution state, the recombination weights, the stagnation tracker, and
// the restart bookkeeping. Variants embed it and drive their own sampling
// and update rules through its helpers.
type ES struct {
	*core.BaseOptimizer

	nIndividuals int
	nParents     int
	weights      RecombinationWeights

	mean     []float64
	sigma    float64
	etaMean  float64
	etaSigma float64

	// Restart state. sigmaBak is the step size captured at construction;
	// every restart resets sigma to it so restart chains cannot drift to
	// ever-smaller steps.
	sigmaBak             float64
	sigmaThreshold       float64
	fitnessDiff          float64
	stagnationWindow     int
	stagnationFromLambda bool
	tracker              *StagnationTracker
	nRestart             int
}

// NewES validates the configuration, resolves defaults, and builds the shared
// evolution strategy state for the given problem.
func NewES(name string, problem *core.Problem, config Config, options core.Options) (*ES, error) {
	base, err := core.NewBaseOptimizer(name, problem, options)
	if err != nil {
		return nil, err
	}

	if config.Sigma <= 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "initial step size must be positive"),
			errors.Fields{"sigma": config.Sigma})
	}

	lambda := config.NIndividuals
	if lambda == 0 {
		lambda = 4 + int(3*math.Log(float64(problem.Dim)))
	}
	if lambda < 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "offspring population size must be positive"),
			errors.Fields{"n_individuals": lambda})
	}

	mu := config.NParents
	if mu == 0 {
		mu = lambda / 2
	} else if mu > lambda/2 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "parent population size must not exceed half the offspring population"),
			errors.Fields{"n_parents": mu, "n_individuals": lambda})
	}

	mean := config.Mean
	if mean == nil {
		// 'Mean' has priority over 'X'.
		mean = config.X
	}
	if mean != nil {
		if len(mean) != problem.Dim {
			return nil, errors.WithFields(
				errors.New(errors.DimensionMismatch, "initial mean length does not match problem dimensionality"),
				errors.Fields{"dim": problem.Dim, "mean": len(mean)})
		}
		mean = append([]float64(nil), mean...)
	}

	sigmaThreshold := config.SigmaThreshold
	if sigmaThreshold == 0 {
		sigmaThreshold = defaultSigmaThreshold
	}
	fitnessDiff := config.FitnessDiff
	if fitnessDiff == 0 {
		fitnessDiff = defaultFitnessDiff
	}
	stagnation := config.Stagnation
	stagnationFromLambda := stagnation == 0
	if stagnationFromLambda {
		stagnation = lambda * stagnationPerLambda
	}

	return &ES{
		BaseOptimizer:        base,
		nIndividuals:         lambda,
		nParents:             mu,
		weights:              ComputeRecombinationWeights(lambda, mu),
		mean:                 mean,
		sigma:                config.Sigma,
		etaMean:              config.EtaMean,
		etaSigma:             config.EtaSigma,
		sigmaBak:             config.Sigma,
		sigmaThreshold:       sigmaThreshold,
		fitnessDiff:          fitnessDiff,
		stagnationWindow:     stagnation,
		stagnationFromLambda: stagnationFromLambda,
		tracker:              NewStagnationTracker(stagnation, fitnessDiff, base.BestY()),
	}, nil
}

// NIndividuals returns the current offspring population size lambda.
func (e *ES) NIndividuals() int { return e.nIndividuals }

// NParents returns the current parent population size mu.
func (e *ES) NParents() int { return e.nParents }

// Weights returns the current recombination weights.
func (e *ES) Weights() RecombinationWeights { return e.weights }

// Sigma returns the current global step size.
func (e *ES) Sigma() float64 { return e.sigma }

// Mean returns a copy of the current distribution mean, or nil before
// initialization.
func (e *ES) Mean() []float64 {
	if e.mean == nil {
		return nil
	}
	return append([]float64(nil), e.mean...)
}

// NRestart returns how many restarts have happened so far.
func (e *ES) NRestart() int { return e.nRestart }

// InitializeMean produces the starting mean for a (re)start. On a restart,
// or when no initial mean was configured, it draws uniformly at random from
// the initialization bounds; otherwise it copies the configured mean. The
// returned vector never aliases prior state.
func (e *ES) InitializeMean(isRestart bool) []float64 {
	if isRestart || e.mean == nil {
		lower, upper := e.Problem().InitBounds()
		return core.UniformSample(e.RngInit(), lower, upper)
	}
	return append([]float64(nil), e.mean...)
}

// RestartInitialize records this generation's best-so-far fitness, then
// decides whether to restart: either the step size collapsed below the
// threshold or the stagnation window shows no progress. On restart it resets
// sigma to the value captured at construction, doubles lambda, re-derives mu
// and the recombination weights from the new lambda, and resets the fitness
// history to a single sentinel so the stagnation test cannot re-fire before
// a full new window has elapsed. Restarts are unbounded in count.
func (e *ES) RestartInitialize() bool {
	stagnated := e.tracker.RecordAndCheck(e.BestY())
	isRestart := e.sigma < e.sigmaThreshold || stagnated
	if !isRestart {
		return false
	}

	e.nRestart++
	e.sigma = e.sigmaBak
	e.nIndividuals *= 2
	e.nParents = e.nIndividuals / 2
	e.weights = ComputeRecombinationWeights(e.nIndividuals, e.nParents)
	if e.stagnationFromLambda {
		e.stagnationWindow = e.nIndividuals * stagnationPerLambda
	}
	e.tracker.Reset(e.stagnationWindow)
	return true
}

// CollectResults merges the family state into the base results.
func (e *ES) CollectResults() *core.Results {
	results := e.CollectBase()
	results.Extra["mean"] = e.Mean()
	results.Extra["sigma"] = e.sigma
	results.Extra["n_restart"] = e.nRestart
	return results
}
