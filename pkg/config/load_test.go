package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvelab/gopop/pkg/errors"
)

func TestParseMergesOverDefaults(t *testing.T) {
	doc := `
name: quick
problems:
  - function: sphere
    dim: 5
optimizers:
  - name: csaes
`

	exp, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "quick", exp.Name)
	assert.Equal(t, 10, exp.Repetitions)
	assert.Equal(t, 1, exp.Workers)
	assert.Equal(t, 1, exp.EvalWorkers)
	assert.Equal(t, 1e-8, exp.Target)
	assert.Equal(t, 10000, exp.Budget.MaxFunctionEvaluations)
}

func TestParseFullDocument(t *testing.T) {
	doc := `
name: es-campaign
repetitions: 25
seed: 7
workers: 2
eval_workers: 4
target: 1e-6
problems:
  - function: sphere
    dim: 10
  - function: rastrigin
    dim: 10
    shift_seed: 3
    rotation_seed: 5
optimizers:
  - name: csaes
    params:
      sigma: 0.5
      n_individuals: 20
  - name: de
budget:
  max_function_evaluations: 100000
  max_runtime: 90s
  fitness_threshold: 1e-10
output:
  sqlite: results.db
  parquet_dir: trajectories
  log_file: campaign.log
  verbose: 100
  saving_fitness: 1000
`

	exp, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "es-campaign", exp.Name)
	assert.Equal(t, 25, exp.Repetitions)
	assert.Equal(t, int64(7), exp.Seed)
	assert.Equal(t, 2, exp.Workers)
	assert.Equal(t, 4, exp.EvalWorkers)
	assert.Equal(t, 1e-6, exp.Target)

	require.Len(t, exp.Problems, 2)
	assert.Nil(t, exp.Problems[0].ShiftSeed)
	require.NotNil(t, exp.Problems[1].ShiftSeed)
	assert.Equal(t, int64(3), *exp.Problems[1].ShiftSeed)
	require.NotNil(t, exp.Problems[1].RotationSeed)
	assert.Equal(t, int64(5), *exp.Problems[1].RotationSeed)

	require.Len(t, exp.Optimizers, 2)
	assert.Equal(t, 0.5, exp.Optimizers[0].Params["sigma"])
	assert.Equal(t, 20, exp.Optimizers[0].Params["n_individuals"])
	assert.Nil(t, exp.Optimizers[1].Params)

	assert.Equal(t, 100000, exp.Budget.MaxFunctionEvaluations)
	assert.Equal(t, Duration(90*time.Second), exp.Budget.MaxRuntime)
	assert.Equal(t, 1e-10, exp.Budget.FitnessThreshold)

	assert.Equal(t, "results.db", exp.Output.SQLite)
	assert.Equal(t, "trajectories", exp.Output.ParquetDir)
	assert.Equal(t, "campaign.log", exp.Output.LogFile)
	assert.Equal(t, 100, exp.Output.Verbose)
	assert.Equal(t, 1000, exp.Output.SavingFitness)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("problems: [unclosed"))
	assert.True(t, errors.Is(err, errors.New(errors.ConfigurationError, "")))
}

func TestParseValidationFailure(t *testing.T) {
	doc := `
name: broken
problems:
  - function: nosuch
    dim: 5
optimizers:
  - name: csaes
`

	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.New(errors.ValidationFailed, "")))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.NotEmpty(t, verrs)
}

func TestLoad(t *testing.T) {
	t.Run("Reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exp.yaml")
		doc := "name: fromfile\nproblems:\n  - {function: sphere, dim: 3}\noptimizers:\n  - name: de\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

		exp, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "fromfile", exp.Name)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.True(t, errors.Is(err, errors.New(errors.ConfigurationError, "")))
	})
}

func TestSaveRoundTrip(t *testing.T) {
	exp := GetDefaultExperiment()
	exp.Name = "roundtrip"
	exp.Seed = 42
	exp.Budget.MaxRuntime = Duration(time.Minute)
	shiftSeed := int64(3)
	exp.Problems = []ProblemConfig{{Function: "ackley", Dim: 8, ShiftSeed: &shiftSeed}}
	exp.Optimizers = []OptimizerConfig{{Name: "res", Params: map[string]interface{}{"sigma": 0.3}}}

	path := filepath.Join(t.TempDir(), "nested", "exp.yaml")
	require.NoError(t, Save(exp, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, exp, loaded)
}
