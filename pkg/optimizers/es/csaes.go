package es

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/errors"
)

// CSAES implements the (mu/mu_w, lambda) evolution strategy with cumulative
// step-size adaptation. Offspring are sampled isotropically around the mean,
// the mean moves to the weighted recombination of the top-mu parents, and
// sigma adapts by comparing the length of an exponentially smoothed evolution
// path against its expected length under random selection.
//
// Reference: Hansen, N., Arnold, D.V. and Auger, A., 2015. Evolution
// strategies. In Springer Handbook of Computational Intelligence.
type CSAES struct {
	*ES

	// s is the evolution path accumulating normalized selection steps.
	s []float64
	// eChi approximates E||N(0,I)|| for the problem dimensionality.
	eChi float64

	z [][]float64
	x [][]float64
}

// NewCSAES builds a CSAES optimizer. EtaSigma defaults to
// sqrt(muEff/(dim+muEff)) and EtaMean to 1 (full mean replacement).
func NewCSAES(problem *core.Problem, config Config, options core.Options) (*CSAES, error) {
	base, err := NewES("CSAES", problem, config, options)
	if err != nil {
		return nil, err
	}
	if base.weights.Degenerate() {
		return nil, errors.New(errors.InvalidInput, "cumulative step-size adaptation requires at least two offspring")
	}

	o := &CSAES{ES: base}
	dim := float64(problem.Dim)
	if o.etaSigma == 0 {
		o.etaSigma = math.Sqrt(o.weights.MuEff / (dim + o.weights.MuEff))
	}
	if o.etaMean == 0 {
		o.etaMean = 1
	}
	o.eChi = math.Sqrt(dim) * (1 - 1/(4*dim) + 1/(21*dim*dim))
	return o, nil
}

func (o *CSAES) initialize(isRestart bool) {
	o.s = make([]float64, o.Problem().Dim)
	o.mean = o.InitializeMean(isRestart)
}

// iterate samples one generation of offspring around the current mean and
// evaluates them.
func (o *CSAES) iterate() []float64 {
	dim := o.Problem().Dim
	rng := o.RngOpt()

	o.z = make([][]float64, o.nIndividuals)
	o.x = make([][]float64, o.nIndividuals)
	for k := 0; k < o.nIndividuals; k++ {
		z := make([]float64, dim)
		x := make([]float64, dim)
		for i := range z {
			z[i] = rng.NormFloat64()
			x[i] = o.mean[i] + o.sigma*z[i]
		}
		o.z[k] = z
		o.x[k] = x
	}
	return o.EvaluateBatch(o.x)
}

// updateDistribution recombines the top-mu parents into the new mean and
// adapts sigma through the evolution path. Path coefficients are derived
// from the current weights so they stay consistent after a restart doubles
// the population.
func (o *CSAES) updateDistribution(y []float64) {
	dim := o.Problem().Dim
	order := rankIndices(y)

	zw := make([]float64, dim)
	recombined := make([]float64, dim)
	for k := 0; k < o.nParents; k++ {
		w := o.weights.Weights[k]
		floats.AddScaled(zw, w, o.z[order[k]])
		floats.AddScaled(recombined, w, o.x[order[k]])
	}

	if o.etaMean == 1 {
		copy(o.mean, recombined)
	} else {
		floats.Scale(1-o.etaMean, o.mean)
		floats.AddScaled(o.mean, o.etaMean, recombined)
	}

	s1 := 1 - o.etaSigma
	s2 := math.Sqrt(o.weights.MuEff * o.etaSigma * (2 - o.etaSigma))
	floats.Scale(s1, o.s)
	floats.AddScaled(o.s, s2, zw)

	dSigma := 1 + math.Sqrt(o.weights.MuEff/float64(dim))
	o.sigma *= math.Exp(o.etaSigma / dSigma * (floats.Norm(o.s, 2)/o.eChi - 1))
}

// Optimize runs the generation loop until a stopping condition holds,
// restarting with a doubled population whenever the step size collapses or
// progress stagnates.
func (o *CSAES) Optimize(ctx context.Context) (*core.Results, error) {
	o.Start()
	o.initialize(false)

	var (
		y   []float64
		err error
	)
	for {
		if err = o.CheckContext(ctx); err != nil {
			break
		}
		y = o.iterate()
		if o.CheckTermination() {
			break
		}
		o.PrintVerboseInfo(ctx, y, false)
		o.AdvanceGeneration()
		o.updateDistribution(y)
		if o.RestartInitialize() {
			o.initialize(true)
		}
	}
	o.PrintVerboseInfo(ctx, y, true)
	return o.CollectResults(), err
}

// rankIndices returns candidate indices ordered by ascending fitness.
func rankIndices(y []float64) []int {
	order := make([]int, len(y))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return y[order[a]] < y[order[b]]
	})
	return order
}
