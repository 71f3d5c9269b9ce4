package core

import (
	"math"
	"time"
)

// Options carries the run-level settings shared by every optimizer: stopping
// conditions, seeding, progress reporting, and fitness recording. Algorithm
// specific settings live on each optimizer's own Config.
type Options struct {
	// MaxFunctionEvaluations stops the run once this many objective
	// evaluations have been spent. Zero or negative means unlimited.
	MaxFunctionEvaluations int

	// MaxRuntime stops the run once this much wall-clock time has elapsed.
	// Zero means unlimited.
	MaxRuntime time.Duration

	// FitnessThreshold stops the run once the best-so-far fitness drops to
	// this value or below. Zero means disabled; use a small negative epsilon
	// to stop at an optimum of exactly zero.
	FitnessThreshold float64

	// Seed makes the run reproducible. Zero draws a seed from the clock.
	Seed int64

	// Verbose emits a progress line every Verbose generations. Zero disables
	// progress output.
	Verbose int

	// SavingFitness records a fitness sample every SavingFitness objective
	// evaluations. Zero disables recording.
	SavingFitness int

	// Workers bounds the goroutines used for parallel fitness evaluation of
	// one generation's offspring. Values below two evaluate sequentially.
	Workers int
}

// DefaultOptions returns the options every optimizer starts from.
func DefaultOptions() Options {
	return Options{
		MaxFunctionEvaluations: 0,
		MaxRuntime:             0,
		FitnessThreshold:       math.Inf(-1),
		Seed:                   0,
		Verbose:                0,
		SavingFitness:          0,
		Workers:                1,
	}
}

// withDefaults fills unset fields with their defaults. A zero value means
// "disabled" for every field, so a zero FitnessThreshold maps to negative
// infinity rather than to stopping at zero.
func (o Options) withDefaults() Options {
	if o.FitnessThreshold == 0 {
		o.FitnessThreshold = math.Inf(-1)
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// Option mutates an Options value. Used by constructors accepting a variadic
// option list.
type Option func(*Options)

// WithMaxFunctionEvaluations sets the evaluation budget.
func WithMaxFunctionEvaluations(n int) Option {
	return func(o *Options) {
		o.MaxFunctionEvaluations = n
	}
}

// WithMaxRuntime sets the wall-clock budget.
func WithMaxRuntime(d time.Duration) Option {
	return func(o *Options) {
		o.MaxRuntime = d
	}
}

// WithFitnessThreshold sets the target fitness that ends the run.
func WithFitnessThreshold(y float64) Option {
	return func(o *Options) {
		o.FitnessThreshold = y
	}
}

// WithSeed fixes the random seed for a reproducible run.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithVerbose emits a progress line every freq generations.
func WithVerbose(freq int) Option {
	return func(o *Options) {
		o.Verbose = freq
	}
}

// WithSavingFitness records a fitness sample every freq evaluations.
func WithSavingFitness(freq int) Option {
	return func(o *Options) {
		o.SavingFitness = freq
	}
}

// WithWorkers bounds the goroutines used for offspring evaluation.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// NewOptions builds an Options from defaults plus the given option list.
func NewOptions(opts ...Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
