package core

import (
	"sort"

	"github.com/evolvelab/gopop/pkg/errors"
)

// OptimizerFactory builds an Optimizer for a problem with the given options.
type OptimizerFactory func(problem *Problem, options Options) (Optimizer, error)

// OptimizerRegistry maintains a registry of available Optimizer
// implementations keyed by name. Registration is expected to happen during
// setup from a single goroutine.
type OptimizerRegistry struct {
	factories map[string]OptimizerFactory
}

// NewOptimizerRegistry creates a new OptimizerRegistry.
func NewOptimizerRegistry() *OptimizerRegistry {
	return &OptimizerRegistry{
		factories: make(map[string]OptimizerFactory),
	}
}

// Register adds a new Optimizer factory to the registry.
func (r *OptimizerRegistry) Register(name string, factory OptimizerFactory) {
	r.factories[name] = factory
}

// Create instantiates a new Optimizer based on the given name.
func (r *OptimizerRegistry) Create(name string, problem *Problem, options Options) (Optimizer, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, errors.WithFields(
			errors.New(errors.ResourceNotFound, "unknown optimizer: "+name),
			errors.Fields{"optimizer": name})
	}
	return factory(problem, options)
}

// Names returns the registered optimizer names in sorted order.
func (r *OptimizerRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
