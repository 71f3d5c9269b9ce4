package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvelab/gopop/pkg/errors"
)

type stubOptimizer struct {
	*BaseOptimizer
}

func (s *stubOptimizer) Optimize(ctx context.Context) (*Results, error) {
	s.Start()
	s.Evaluate(make([]float64, s.Problem().Dim))
	return s.CollectBase(), nil
}

func TestOptimizerRegistry(t *testing.T) {
	registry := NewOptimizerRegistry()
	registry.Register("STUB", func(problem *Problem, options Options) (Optimizer, error) {
		base, err := NewBaseOptimizer("STUB", problem, options)
		if err != nil {
			return nil, err
		}
		return &stubOptimizer{BaseOptimizer: base}, nil
	})

	t.Run("creates registered optimizer", func(t *testing.T) {
		opt, err := registry.Create("STUB", validProblem(2), NewOptions(WithSeed(1)))
		require.NoError(t, err)
		assert.Equal(t, "STUB", opt.Name())

		results, err := opt.Optimize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, results.NFunctionEvaluations)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := registry.Create("MISSING", validProblem(2), NewOptions())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.New(errors.ResourceNotFound, "")))
	})

	t.Run("names are sorted", func(t *testing.T) {
		registry.Register("ALPHA", func(problem *Problem, options Options) (Optimizer, error) {
			return nil, nil
		})
		assert.Equal(t, []string{"ALPHA", "STUB"}, registry.Names())
	})
}
