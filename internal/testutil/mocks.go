package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/evolvelab/gopop/pkg/core"
)

// MockOptimizer is a mock implementation of core.Optimizer.
type MockOptimizer struct {
	mock.Mock
}

func (m *MockOptimizer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockOptimizer) Optimize(ctx context.Context) (*core.Results, error) {
	args := m.Called(ctx)
	if results := args.Get(0); results != nil {
		return results.(*core.Results), args.Error(1)
	}
	return nil, args.Error(1)
}
