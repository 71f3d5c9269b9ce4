package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExperiment() *Experiment {
	return &Experiment{
		Name:        "smoke",
		Repetitions: 3,
		Workers:     1,
		EvalWorkers: 1,
		Target:      1e-8,
		Problems:    []ProblemConfig{{Function: "sphere", Dim: 5}},
		Optimizers:  []OptimizerConfig{{Name: "csaes"}},
		Budget:      BudgetConfig{MaxFunctionEvaluations: 1000},
	}
}

func TestValidateExperimentValid(t *testing.T) {
	assert.NoError(t, ValidateExperiment(validExperiment()))
}

func TestValidateExperimentNil(t *testing.T) {
	err := ValidateExperiment(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "experiment is nil")
}

func TestValidateExperimentStructTags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Experiment)
		want   string
	}{
		{
			name:   "Missing name",
			mutate: func(e *Experiment) { e.Name = "" },
			want:   "Name is required",
		},
		{
			name:   "Zero repetitions",
			mutate: func(e *Experiment) { e.Repetitions = 0 },
			want:   "Repetitions must be at least 1",
		},
		{
			name:   "Zero workers",
			mutate: func(e *Experiment) { e.Workers = 0 },
			want:   "Workers must be at least 1",
		},
		{
			name:   "No problems",
			mutate: func(e *Experiment) { e.Problems = nil },
			want:   "Problems is required",
		},
		{
			name:   "No optimizers",
			mutate: func(e *Experiment) { e.Optimizers = nil },
			want:   "Optimizers is required",
		},
		{
			name: "Unknown benchmark function",
			mutate: func(e *Experiment) {
				e.Problems = []ProblemConfig{{Function: "nosuch", Dim: 5}}
			},
			want: "Function must name a catalog function",
		},
		{
			name: "Optimizer without a name",
			mutate: func(e *Experiment) {
				e.Optimizers = []OptimizerConfig{{}}
			},
			want: "Name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := validExperiment()
			tt.mutate(exp)

			err := ValidateExperiment(exp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateExperimentCustomRules(t *testing.T) {
	t.Run("Dimensionality below the function's minimum", func(t *testing.T) {
		exp := validExperiment()
		exp.Problems = []ProblemConfig{{Function: "rosenbrock", Dim: 1}}

		err := ValidateExperiment(exp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rosenbrock requires at least 2 dimensions, got 1")
	})

	t.Run("Duplicate optimizer names", func(t *testing.T) {
		exp := validExperiment()
		exp.Optimizers = []OptimizerConfig{{Name: "de"}, {Name: "DE"}}

		err := ValidateExperiment(exp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate optimizer "DE"`)
	})

	t.Run("No stopping condition", func(t *testing.T) {
		exp := validExperiment()
		exp.Budget = BudgetConfig{}

		err := ValidateExperiment(exp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs a finite budget")
	})

	t.Run("Fitness threshold alone is not a budget", func(t *testing.T) {
		exp := validExperiment()
		exp.Budget = BudgetConfig{FitnessThreshold: 1e-8}

		err := ValidateExperiment(exp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs a finite budget")
	})

	t.Run("Negative runtime", func(t *testing.T) {
		exp := validExperiment()
		exp.Budget = BudgetConfig{MaxFunctionEvaluations: 1000, MaxRuntime: Duration(-1)}

		err := ValidateExperiment(exp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_runtime must not be negative")
	})
}

func TestValidationErrorMessages(t *testing.T) {
	t.Run("Explicit message wins", func(t *testing.T) {
		e := ValidationError{Field: "X", Tag: "min", Message: "X is broken"}
		assert.Equal(t, "X is broken", e.Error())
	})

	t.Run("Tag fallback", func(t *testing.T) {
		e := ValidationError{Field: "X", Tag: "min"}
		assert.Equal(t, "X failed min validation", e.Error())
	})

	t.Run("Joined messages", func(t *testing.T) {
		errs := ValidationErrors{
			{Message: "first"},
			{Message: "second"},
		}
		assert.Equal(t, "validation failed: first; second", errs.Error())
	})

	t.Run("Empty list", func(t *testing.T) {
		assert.Equal(t, "", ValidationErrors{}.Error())
	})
}

func TestGetValidatorIsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
