package core

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvelab/gopop/pkg/errors"
)

func newTestBase(t *testing.T, opts Options) *BaseOptimizer {
	t.Helper()
	base, err := NewBaseOptimizer("TEST", validProblem(3), opts)
	require.NoError(t, err)
	return base
}

func TestNewBaseOptimizerValidatesProblem(t *testing.T) {
	p := validProblem(3)
	p.Objective = nil
	_, err := NewBaseOptimizer("TEST", p, NewOptions())
	assert.Error(t, err)
}

func TestEvaluateTracksBestSoFar(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1)))

	y1 := base.Evaluate([]float64{2, 0, 0})
	assert.Equal(t, 4.0, y1)
	assert.Equal(t, 1, base.NEvaluations())
	assert.Equal(t, 4.0, base.BestY())
	assert.Equal(t, []float64{2, 0, 0}, base.BestX())

	// A worse candidate leaves the best pair untouched.
	base.Evaluate([]float64{3, 0, 0})
	assert.Equal(t, 2, base.NEvaluations())
	assert.Equal(t, 4.0, base.BestY())
	assert.Equal(t, []float64{2, 0, 0}, base.BestX())

	// A better one replaces it.
	base.Evaluate([]float64{1, 0, 0})
	assert.Equal(t, 1.0, base.BestY())
	assert.Equal(t, []float64{1, 0, 0}, base.BestX())
}

func TestBestXReturnsCopy(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1)))
	base.Evaluate([]float64{1, 1, 1})

	x := base.BestX()
	x[0] = 99
	assert.Equal(t, []float64{1, 1, 1}, base.BestX())
}

func TestMaximizeNegatesInternally(t *testing.T) {
	p := validProblem(2)
	p.Maximize = true
	// Objective peaks at the origin under maximization of -sphere.
	p.Objective = func(x []float64) float64 {
		return -(x[0]*x[0] + x[1]*x[1])
	}

	base, err := NewBaseOptimizer("TEST", p, NewOptions(WithSeed(1)))
	require.NoError(t, err)

	y := base.Evaluate([]float64{1, 1})
	// Internal sense is minimization: -(-2) = 2.
	assert.Equal(t, 2.0, y)
	assert.Equal(t, 2.0, base.BestY())
	// Reporting converts back to the problem's sense.
	assert.Equal(t, -2.0, base.DisplayY(base.BestY()))
	assert.Equal(t, -2.0, base.CollectBase().BestY)
}

func TestEvaluateBatchMatchesSequential(t *testing.T) {
	xs := [][]float64{
		{1, 0, 0},
		{0, 2, 0},
		{0, 0, 3},
		{0.5, 0.5, 0.5},
	}

	sequential := newTestBase(t, NewOptions(WithSeed(1)))
	parallel := newTestBase(t, NewOptions(WithSeed(1), WithWorkers(4)))

	ySeq := sequential.EvaluateBatch(xs)
	yPar := parallel.EvaluateBatch(xs)

	assert.Equal(t, ySeq, yPar)
	assert.Equal(t, sequential.NEvaluations(), parallel.NEvaluations())
	assert.Equal(t, sequential.BestY(), parallel.BestY())
	assert.Equal(t, sequential.BestX(), parallel.BestX())
}

func TestCheckTerminationBudget(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1), WithMaxFunctionEvaluations(3)))
	base.Start()

	assert.False(t, base.CheckTermination())
	base.Evaluate([]float64{1, 0, 0})
	base.Evaluate([]float64{1, 0, 0})
	assert.False(t, base.CheckTermination())
	base.Evaluate([]float64{1, 0, 0})
	assert.True(t, base.CheckTermination())
	assert.Equal(t, TerminationMaxEvaluations, base.Termination())
}

func TestCheckTerminationFitnessThreshold(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1), WithFitnessThreshold(0.5)))
	base.Start()

	base.Evaluate([]float64{1, 0, 0})
	assert.False(t, base.CheckTermination())

	base.Evaluate([]float64{0.1, 0, 0})
	assert.True(t, base.CheckTermination())
	assert.Equal(t, TerminationFitnessThreshold, base.Termination())
}

func TestCheckTerminationLatches(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1), WithMaxFunctionEvaluations(1)))
	base.Start()
	base.Evaluate([]float64{1, 0, 0})

	require.True(t, base.CheckTermination())
	first := base.Termination()

	// A later threshold hit must not overwrite the latched reason.
	base.Evaluate([]float64{0, 0, 0})
	assert.True(t, base.CheckTermination())
	assert.Equal(t, first, base.Termination())
}

func TestCheckTerminationRuntime(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1), WithMaxRuntime(time.Nanosecond)))
	base.Start()
	time.Sleep(time.Millisecond)
	assert.True(t, base.CheckTermination())
	assert.Equal(t, TerminationMaxRuntime, base.Termination())
}

func TestCheckContextCancellation(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1)))
	base.Start()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, base.CheckContext(ctx))

	cancel()
	err := base.CheckContext(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.New(errors.Canceled, "")))
	assert.Equal(t, TerminationCanceled, base.Termination())
}

func TestSavingFitnessRecordsTrajectory(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1), WithSavingFitness(2)))
	base.Start()

	for i := 0; i < 5; i++ {
		base.Evaluate([]float64{float64(i), 0, 0})
	}

	results := base.CollectBase()
	// First evaluation is always recorded, then every second one.
	require.Len(t, results.Fitness, 3)
	assert.Equal(t, 1, results.Fitness[0].Evaluations)
	assert.Equal(t, 2, results.Fitness[1].Evaluations)
	assert.Equal(t, 4, results.Fitness[2].Evaluations)
	assert.Equal(t, 0.0, results.Fitness[0].Y)
}

func TestRngStreamsReproducible(t *testing.T) {
	a := newTestBase(t, NewOptions(WithSeed(123)))
	b := newTestBase(t, NewOptions(WithSeed(123)))

	assert.Equal(t, a.RngInit().Float64(), b.RngInit().Float64())
	assert.Equal(t, a.RngOpt().Float64(), b.RngOpt().Float64())

	c := newTestBase(t, NewOptions(WithSeed(124)))
	assert.NotEqual(t, a.RngInit().Float64(), c.RngInit().Float64())
}

func TestCollectBase(t *testing.T) {
	base := newTestBase(t, NewOptions(WithSeed(1)))
	base.Start()
	base.Evaluate([]float64{1, 1, 1})
	base.AdvanceGeneration()
	base.AdvanceGeneration()

	results := base.CollectBase()
	assert.Equal(t, []float64{1, 1, 1}, results.BestX)
	assert.Equal(t, 3.0, results.BestY)
	assert.Equal(t, 1, results.NFunctionEvaluations)
	assert.Equal(t, 2, results.NGenerations)
	assert.Equal(t, TerminationNone, results.Termination)
	assert.NotNil(t, results.Extra)
	assert.GreaterOrEqual(t, results.Runtime, time.Duration(0))
}

func TestOptionsDefaults(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, 0, opts.MaxFunctionEvaluations)
	assert.True(t, math.IsInf(opts.FitnessThreshold, -1))
	assert.Equal(t, 1, opts.Workers)

	opts = NewOptions(
		WithMaxFunctionEvaluations(5000),
		WithFitnessThreshold(1e-8),
		WithSeed(7),
		WithVerbose(10),
		WithSavingFitness(1),
		WithWorkers(8),
		WithMaxRuntime(time.Minute),
	)
	assert.Equal(t, 5000, opts.MaxFunctionEvaluations)
	assert.Equal(t, 1e-8, opts.FitnessThreshold)
	assert.Equal(t, int64(7), opts.Seed)
	assert.Equal(t, 10, opts.Verbose)
	assert.Equal(t, 1, opts.SavingFitness)
	assert.Equal(t, 8, opts.Workers)
	assert.Equal(t, time.Minute, opts.MaxRuntime)
}

func TestTerminationString(t *testing.T) {
	tests := []struct {
		termination Termination
		expected    string
	}{
		{TerminationNone, "none"},
		{TerminationMaxEvaluations, "max_function_evaluations"},
		{TerminationFitnessThreshold, "fitness_threshold"},
		{TerminationMaxRuntime, "max_runtime"},
		{TerminationCanceled, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.termination.String())
		})
	}
}
