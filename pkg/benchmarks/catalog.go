package benchmarks

import (
	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

// Function describes a catalog entry: the objective together with its
// conventional search domain and global minimum.
type Function struct {
	Name string
	// MinDim is the smallest dimensionality the function is defined for.
	MinDim int
	// Lower and Upper are the conventional per-coordinate search bounds.
	Lower float64
	Upper float64
	// OptimumCoord is the per-coordinate position of the global minimum;
	// OptimumY its value.
	OptimumCoord float64
	OptimumY     float64

	Objective core.Objective
}

// Bounds expands the conventional domain to dim coordinates.
func (f Function) Bounds(dim int) (lower, upper []float64) {
	lower = make([]float64, dim)
	upper = make([]float64, dim)
	for i := 0; i < dim; i++ {
		lower[i] = f.Lower
		upper[i] = f.Upper
	}
	return lower, upper
}

// OptimumX expands the global minimum position to dim coordinates.
func (f Function) OptimumX(dim int) []float64 {
	x := make([]float64, dim)
	for i := range x {
		x[i] = f.OptimumCoord
	}
	return x
}

// Problem builds a ready-to-optimize problem on the conventional domain.
func (f Function) Problem(dim int) (*core.Problem, error) {
	if dim < f.MinDim {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "dimensionality below the function's minimum"),
			errors.Fields{"function": f.Name, "dim": dim, "min_dim": f.MinDim})
	}
	lower, upper := f.Bounds(dim)
	return &core.Problem{
		Name:       f.Name,
		Dim:        dim,
		LowerBound: lower,
		UpperBound: upper,
		Objective:  f.Objective,
	}, nil
}

var catalog = []Function{
	{Name: "sphere", MinDim: 1, Lower: -10, Upper: 10, Objective: Sphere},
	{Name: "cigar", MinDim: 2, Lower: -10, Upper: 10, Objective: Cigar},
	{Name: "discus", MinDim: 2, Lower: -10, Upper: 10, Objective: Discus},
	{Name: "cigar_discus", MinDim: 2, Lower: -10, Upper: 10, Objective: CigarDiscus},
	{Name: "ellipsoid", MinDim: 2, Lower: -10, Upper: 10, Objective: Ellipsoid},
	{Name: "different_powers", MinDim: 2, Lower: -10, Upper: 10, Objective: DifferentPowers},
	{Name: "schwefel221", MinDim: 1, Lower: -100, Upper: 100, Objective: Schwefel221},
	{Name: "step", MinDim: 1, Lower: -100, Upper: 100, Objective: Step},
	{Name: "schwefel222", MinDim: 1, Lower: -10, Upper: 10, Objective: Schwefel222},
	{Name: "rosenbrock", MinDim: 2, Lower: -10, Upper: 10, OptimumCoord: 1, Objective: Rosenbrock},
	{Name: "schwefel12", MinDim: 2, Lower: -100, Upper: 100, Objective: Schwefel12},
	{Name: "griewank", MinDim: 1, Lower: -600, Upper: 600, Objective: Griewank},
	{Name: "ackley", MinDim: 1, Lower: -32.768, Upper: 32.768, Objective: Ackley},
	{Name: "rastrigin", MinDim: 1, Lower: -5.12, Upper: 5.12, Objective: Rastrigin},
}

// All returns the catalog entries in their conventional order, from the
// simple unimodal bowls to the multimodal landscapes.
func All() []Function {
	out := make([]Function, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the catalog's function names in order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, f := range catalog {
		names[i] = f.Name
	}
	return names
}

// Lookup finds a catalog entry by name.
func Lookup(name string) (Function, error) {
	for _, f := range catalog {
		if f.Name == name {
			return f, nil
		}
	}
	return Function{}, errors.WithFields(
		errors.New(errors.ResourceNotFound, "unknown benchmark function"),
		errors.Fields{"function": name})
}
