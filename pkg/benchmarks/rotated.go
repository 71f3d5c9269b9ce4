package benchmarks

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/evolvelab/gopop/pkg/core"
)

// GenerateRotationMatrix builds a seeded random orthogonal matrix as the Q
// factor of a QR-decomposed Gaussian matrix.
func GenerateRotationMatrix(dim int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, dim*dim)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	var qr mat.QR
	qr.Factorize(mat.NewDense(dim, dim, data))
	var q mat.Dense
	qr.QTo(&q)
	return &q
}

// Rotated makes a separable function non-separable by evaluating the wrapped
// function at rotation*x.
func Rotated(f core.Objective, rotation *mat.Dense) core.Objective {
	return func(x []float64) float64 {
		z := mat.NewVecDense(len(x), nil)
		z.MulVec(rotation, mat.NewVecDense(len(x), x))
		return f(z.RawVector().Data)
	}
}
