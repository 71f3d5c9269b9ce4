package benchmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShiftVector(t *testing.T) {
	lower := []float64{-5, -5}
	upper := []float64{10, 10}

	t.Run("stays inside bounds", func(t *testing.T) {
		shift := GenerateShiftVector(0, lower, upper)
		require.Len(t, shift, 2)
		for i, v := range shift {
			assert.GreaterOrEqual(t, v, lower[i])
			assert.Less(t, v, upper[i])
		}
	})

	t.Run("reproducible for a seed", func(t *testing.T) {
		assert.Equal(t, GenerateShiftVector(7, lower, upper), GenerateShiftVector(7, lower, upper))
	})

	t.Run("seeds give different shifts", func(t *testing.T) {
		assert.NotEqual(t, GenerateShiftVector(1, lower, upper), GenerateShiftVector(2, lower, upper))
	})
}

func TestShifted(t *testing.T) {
	shift := []float64{1, 2}
	f := Shifted(Sphere, shift)

	t.Run("optimum moves to the shift", func(t *testing.T) {
		assert.InDelta(t, 0.0, f(shift), 1e-12)
	})

	t.Run("evaluates the base function at the offset", func(t *testing.T) {
		// Sphere([3-1, 5-2]) = 4 + 9.
		assert.InDelta(t, 13.0, f([]float64{3, 5}), 1e-12)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		x := []float64{3, 5}
		f(x)
		assert.Equal(t, []float64{3, 5}, x)
	})
}
