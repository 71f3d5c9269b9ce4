package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/evolvelab/gopop/pkg/benchmarks"
	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

// Experiment is the top-level document for a benchmark campaign: which
// optimizers to run on which problems, how often, and under which budget.
type Experiment struct {
	// Name identifies the campaign in logs and result records.
	Name string `yaml:"name" validate:"required"`

	// Repetitions is the number of independent runs per optimizer/problem pair.
	Repetitions int `yaml:"repetitions" validate:"min=1"`

	// Seed makes the campaign reproducible: repetition r runs with seed+r.
	// Zero seeds every run from the clock.
	Seed int64 `yaml:"seed,omitempty"`

	// Workers bounds how many runs execute concurrently.
	Workers int `yaml:"workers" validate:"min=1"`

	// EvalWorkers bounds the goroutines each run may use to evaluate one
	// generation's offspring in parallel.
	EvalWorkers int `yaml:"eval_workers" validate:"min=1"`

	// Target is the objective value a run must reach to count as successful
	// in the cross-run summary.
	Target float64 `yaml:"target"`

	// Problems lists the benchmark instances to optimize.
	Problems []ProblemConfig `yaml:"problems" validate:"required,min=1,dive"`

	// Optimizers lists the algorithms to run on every problem.
	Optimizers []OptimizerConfig `yaml:"optimizers" validate:"required,min=1,dive"`

	// Budget holds the stopping conditions applied to every run.
	Budget BudgetConfig `yaml:"budget"`

	// Output controls progress reporting and result persistence.
	Output OutputConfig `yaml:"output,omitempty"`
}

// ProblemConfig selects a catalog function and an instance transformation.
type ProblemConfig struct {
	// Function names a benchmark catalog entry.
	Function string `yaml:"function" validate:"required,benchmark_function"`

	// Dim is the problem dimensionality.
	Dim int `yaml:"dim" validate:"min=1"`

	// ShiftSeed, when set, moves the optimum to a seeded random point.
	ShiftSeed *int64 `yaml:"shift_seed,omitempty"`

	// RotationSeed, when set, applies a seeded random orthogonal rotation.
	RotationSeed *int64 `yaml:"rotation_seed,omitempty"`
}

// OptimizerConfig selects an algorithm and its algorithm-specific parameters.
type OptimizerConfig struct {
	// Name is the registered optimizer identifier (e.g. "csaes", "de").
	Name string `yaml:"name" validate:"required"`

	// Params holds algorithm-specific settings such as sigma or n_individuals.
	// Keys an algorithm does not know are rejected when the optimizer is built.
	Params map[string]interface{} `yaml:"params,omitempty"`
}

// BudgetConfig holds the per-run stopping conditions.
type BudgetConfig struct {
	// MaxFunctionEvaluations stops a run after this many objective
	// evaluations. Zero means unlimited.
	MaxFunctionEvaluations int `yaml:"max_function_evaluations" validate:"min=0"`

	// MaxRuntime stops a run after this much wall-clock time ("90s", "2m").
	// Zero means unlimited.
	MaxRuntime Duration `yaml:"max_runtime,omitempty"`

	// FitnessThreshold stops a run once its best fitness reaches this value.
	// Zero means disabled.
	FitnessThreshold float64 `yaml:"fitness_threshold,omitempty"`
}

// OutputConfig controls reporting and persistence.
type OutputConfig struct {
	// SQLite, when set, archives run records into this database file.
	SQLite string `yaml:"sqlite,omitempty"`

	// ParquetDir, when set, exports per-run fitness trajectories as Parquet
	// files into this directory.
	ParquetDir string `yaml:"parquet_dir,omitempty"`

	// LogFile, when set, appends campaign log entries to this file as JSON
	// lines, in addition to console output.
	LogFile string `yaml:"log_file,omitempty"`

	// Verbose emits a progress line every Verbose generations of each run.
	Verbose int `yaml:"verbose" validate:"min=0"`

	// SavingFitness records a trajectory sample every SavingFitness
	// evaluations. Zero disables trajectory recording.
	SavingFitness int `yaml:"saving_fitness" validate:"min=0"`
}

// Duration is a time.Duration that reads from YAML in time.ParseDuration
// notation ("90s", "2m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.ConfigurationError, "invalid duration"),
			errors.Fields{"value": raw})
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Problem builds the benchmark instance this entry describes, applying the
// rotation inside the shift so a doubly transformed function evaluates
// f(R(x - shift)).
func (p *ProblemConfig) Problem() (*core.Problem, error) {
	fn, err := benchmarks.Lookup(p.Function)
	if err != nil {
		return nil, err
	}
	prob, err := fn.Problem(p.Dim)
	if err != nil {
		return nil, err
	}

	objective := fn.Objective
	name := fn.Name
	if p.RotationSeed != nil {
		rotation := benchmarks.GenerateRotationMatrix(p.Dim, *p.RotationSeed)
		objective = benchmarks.Rotated(objective, rotation)
		name = "rotated_" + name
	}
	if p.ShiftSeed != nil {
		shift := benchmarks.GenerateShiftVector(*p.ShiftSeed, prob.LowerBound, prob.UpperBound)
		objective = benchmarks.Shifted(objective, shift)
		name = "shifted_" + name
	}

	prob.Name = name
	prob.Objective = objective
	return prob, nil
}

// Options maps the experiment's budget and reporting settings to the run
// options of one repetition.
func (e *Experiment) Options(repetition int) core.Options {
	opts := core.DefaultOptions()
	opts.MaxFunctionEvaluations = e.Budget.MaxFunctionEvaluations
	opts.MaxRuntime = time.Duration(e.Budget.MaxRuntime)
	if e.Budget.FitnessThreshold != 0 {
		opts.FitnessThreshold = e.Budget.FitnessThreshold
	}
	if e.Seed != 0 {
		opts.Seed = e.Seed + int64(repetition)
	}
	opts.Verbose = e.Output.Verbose
	opts.SavingFitness = e.Output.SavingFitness
	opts.Workers = e.EvalWorkers
	return opts
}
