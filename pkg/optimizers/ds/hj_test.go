package ds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvelab/gopop/pkg/core"
)

func TestNewHookeJeevesDefaults(t *testing.T) {
	o, err := NewHookeJeeves(sphereProblem(3), Config{Sigma: 0.5}, core.NewOptions(core.WithSeed(1)))
	require.NoError(t, err)

	assert.Equal(t, "HookeJeeves", o.Name())
	assert.Equal(t, 0.5, o.Sigma())
	assert.Equal(t, 0.5, o.stepDecay)
}

func TestHookeJeevesSweep(t *testing.T) {
	o, err := NewHookeJeeves(sphereProblem(2), Config{Sigma: 0.25, X: []float64{1, 1}}, core.NewOptions(core.WithSeed(1)))
	require.NoError(t, err)
	o.Start()
	o.initialize()

	// First coordinate: +0.25 worsens, -0.25 helps. Second: -0.25 helps.
	x, fx, spent := o.sweep(o.probe, o.baseY)
	assert.InDelta(t, 0.75, x[0], 1e-12)
	assert.InDelta(t, 0.75, x[1], 1e-12)
	assert.InDelta(t, 1.125, fx, 1e-12)
	assert.Len(t, spent, 4)
}

func TestHookeJeevesPatternMove(t *testing.T) {
	o, err := NewHookeJeeves(sphereProblem(2), Config{Sigma: 0.25, X: []float64{1, 1}}, core.NewOptions(core.WithSeed(1)))
	require.NoError(t, err)
	o.Start()
	o.initialize()
	o.iterate()

	assert.True(t, o.probePattern)
	assert.InDelta(t, 0.75, o.base[0], 1e-12)
	assert.InDelta(t, 0.75, o.base[1], 1e-12)
	// The pattern point doubles the improving step: 2*0.75 - 1.
	assert.InDelta(t, 0.5, o.probe[0], 1e-12)
	assert.InDelta(t, 0.5, o.probe[1], 1e-12)
}

func TestHookeJeevesStepDecayOnFailedBaseSweep(t *testing.T) {
	o, err := NewHookeJeeves(sphereProblem(2), Config{Sigma: 0.5, X: []float64{0, 0}}, core.NewOptions(core.WithSeed(1)))
	require.NoError(t, err)
	o.Start()
	o.initialize()
	o.iterate()

	// Every probe from the optimum fails, so the step halves.
	assert.Equal(t, 0.25, o.sigma)
	assert.False(t, o.probePattern)
	assert.Equal(t, o.base, o.probe)
}

func TestHookeJeevesPatternFailureKeepsStep(t *testing.T) {
	o, err := NewHookeJeeves(sphereProblem(2), Config{Sigma: 0.25, X: []float64{0, 0}}, core.NewOptions(core.WithSeed(1)))
	require.NoError(t, err)
	o.Start()
	o.initialize()

	// A pattern probe far from the base cannot beat it; the step must
	// survive and the next sweep falls back to the base.
	o.base = []float64{0, 0}
	o.baseY = 0
	o.probe = []float64{1, 1}
	o.probePattern = true

	o.iterate()

	assert.Equal(t, 0.25, o.sigma)
	assert.False(t, o.probePattern)
	assert.Equal(t, []float64{0, 0}, o.probe)
}

func TestHookeJeevesConvergesOnSphere(t *testing.T) {
	o, err := NewHookeJeeves(sphereProblem(3), Config{Sigma: 1, X: []float64{4.2, 3.7, 4.9}}, core.NewOptions(
		core.WithSeed(1),
		core.WithMaxFunctionEvaluations(2000)))
	require.NoError(t, err)

	results, err := o.Optimize(context.Background())
	require.NoError(t, err)

	assert.Less(t, results.BestY, 1e-6)
	assert.Equal(t, core.TerminationMaxEvaluations, results.Termination)
}

func TestHookeJeevesRosenbrock(t *testing.T) {
	problem := sphereProblem(2)
	problem.Name = "rosenbrock"
	problem.Objective = rosenbrock
	problem.LowerBound = []float64{-5, -5}
	problem.UpperBound = []float64{5, 5}

	o, err := NewHookeJeeves(problem, Config{Sigma: 1}, core.NewOptions(
		core.WithSeed(2022),
		core.WithMaxFunctionEvaluations(5000)))
	require.NoError(t, err)

	results, err := o.Optimize(context.Background())
	require.NoError(t, err)

	assert.Less(t, results.BestY, 1.0)
}

func TestHookeJeevesReproducibleWithSeed(t *testing.T) {
	run := func() *core.Results {
		o, err := NewHookeJeeves(sphereProblem(3), Config{Sigma: 1}, core.NewOptions(
			core.WithSeed(31),
			core.WithMaxFunctionEvaluations(1500)))
		require.NoError(t, err)
		results, err := o.Optimize(context.Background())
		require.NoError(t, err)
		return results
	}

	first := run()
	second := run()
	assert.Equal(t, first.BestY, second.BestY)
	assert.Equal(t, first.BestX, second.BestX)
}

func TestHookeJeevesResultsIncludeSigma(t *testing.T) {
	o, err := NewHookeJeeves(sphereProblem(2), Config{Sigma: 1, X: []float64{2, 2}}, core.NewOptions(
		core.WithSeed(1),
		core.WithMaxFunctionEvaluations(1000)))
	require.NoError(t, err)

	results, err := o.Optimize(context.Background())
	require.NoError(t, err)

	sigma, ok := results.Extra["sigma"].(float64)
	require.True(t, ok)
	assert.Less(t, sigma, 1.0)
}
