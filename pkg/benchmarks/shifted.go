package benchmarks

import (
	"math/rand"

	"github.com/evolvelab/gopop/pkg/core"
)

// GenerateShiftVector draws a shift uniformly from [lower, upper) using its
// own seeded source, so shifted problem instances are reproducible and
// independent of any optimizer's random stream.
func GenerateShiftVector(seed int64, lower, upper []float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	return core.UniformSample(rng, lower, upper)
}

// Shifted moves a function's optimum to the shift point by evaluating the
// wrapped function at x - shift.
func Shifted(f core.Objective, shift []float64) core.Objective {
	return func(x []float64) float64 {
		z := make([]float64, len(x))
		for i := range z {
			z[i] = x[i] - shift[i]
		}
		return f(z)
	}
}
