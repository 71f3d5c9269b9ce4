package benchmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvelab/gopop/pkg/errors"
)

func TestCatalogContents(t *testing.T) {
	all := All()
	require.Len(t, all, 14)

	names := Names()
	assert.Equal(t, "sphere", names[0])
	assert.Equal(t, "rastrigin", names[len(names)-1])
	assert.Len(t, names, len(all))
}

func TestCatalogOptima(t *testing.T) {
	for _, f := range All() {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			dim := f.MinDim
			if dim < 2 {
				dim = 2
			}
			y := f.Objective(f.OptimumX(dim))
			assert.InDelta(t, f.OptimumY, y, 1e-9)
		})
	}
}

func TestCatalogProblems(t *testing.T) {
	for _, f := range All() {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			problem, err := f.Problem(5)
			require.NoError(t, err)
			require.NoError(t, problem.Validate())
			assert.Equal(t, f.Name, problem.Name)
			assert.Len(t, problem.LowerBound, 5)
			assert.Equal(t, f.Lower, problem.LowerBound[0])
			assert.Equal(t, f.Upper, problem.UpperBound[0])
		})
	}
}

func TestProblemRejectsLowDimension(t *testing.T) {
	f, err := Lookup("rosenbrock")
	require.NoError(t, err)

	_, err = f.Problem(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.New(errors.InvalidInput, "")))
}

func TestLookup(t *testing.T) {
	t.Run("known function", func(t *testing.T) {
		f, err := Lookup("ackley")
		require.NoError(t, err)
		assert.Equal(t, "ackley", f.Name)
		assert.Equal(t, 32.768, f.Upper)
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := Lookup("eggholder")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.New(errors.ResourceNotFound, "")))
	})
}

func TestShiftedCatalogProblem(t *testing.T) {
	// A shifted instance built from catalog pieces keeps its minimum at the
	// generated shift point.
	f, err := Lookup("rastrigin")
	require.NoError(t, err)

	lower, upper := f.Bounds(4)
	shift := GenerateShiftVector(9, lower, upper)
	shifted := Shifted(f.Objective, shift)

	assert.InDelta(t, f.OptimumY, shifted(shift), 1e-9)
}
