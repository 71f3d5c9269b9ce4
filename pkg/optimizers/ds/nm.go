package ds

import (
	"context"
	"sort"

	"github.com/evolvelab/gopop/pkg/core"
)

// NelderMead is the downhill simplex method. A simplex of dim+1 vertices
// walks through the search space by reflecting its worst vertex through the
// centroid of the others, expanding on success, contracting on failure, and
// shrinking toward the best vertex when nothing else helps.
//
// Reference: Nelder, J.A. and Mead, R., 1965. A simplex method for function
// minimization. The Computer Journal, 7(4), pp.308-313.
type NelderMead struct {
	*core.BaseOptimizer

	sigma float64
	alpha float64
	beta  float64
	gamma float64
	delta float64

	start []float64
	x     [][]float64
	y     []float64
}

// NewNelderMead validates the configuration and builds a simplex optimizer.
func NewNelderMead(problem *core.Problem, config Config, options core.Options) (*NelderMead, error) {
	base, err := core.NewBaseOptimizer("NelderMead", problem, options)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(problem, config); err != nil {
		return nil, err
	}

	o := &NelderMead{
		BaseOptimizer: base,
		sigma:         config.Sigma,
		alpha:         config.Alpha,
		beta:          config.Beta,
		gamma:         config.Gamma,
		delta:         config.Delta,
	}
	if o.alpha == 0 {
		o.alpha = 1
	}
	if o.beta == 0 {
		o.beta = 2
	}
	if o.gamma == 0 {
		o.gamma = 0.5
	}
	if o.delta == 0 {
		o.delta = 0.5
	}
	if config.X != nil {
		o.start = make([]float64, problem.Dim)
		copy(o.start, config.X)
	}
	return o, nil
}

// initialize builds the starting simplex: the start point plus one vertex
// offset by sigma along each axis, all evaluated as a batch.
func (o *NelderMead) initialize() {
	problem := o.Problem()
	dim := problem.Dim
	x0 := startPoint(o.BaseOptimizer, o.start)

	o.x = make([][]float64, dim+1)
	o.x[0] = x0
	for i := 1; i <= dim; i++ {
		v := make([]float64, dim)
		copy(v, x0)
		v[i-1] += o.sigma
		o.x[i] = core.Clamp(v, problem.LowerBound, problem.UpperBound)
	}
	o.y = o.EvaluateBatch(o.x)
	o.sortSimplex()
}

// sortSimplex orders vertices by ascending fitness.
func (o *NelderMead) sortSimplex() {
	order := make([]int, len(o.y))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return o.y[order[a]] < o.y[order[b]] })

	x := make([][]float64, len(o.x))
	y := make([]float64, len(o.y))
	for i, idx := range order {
		x[i] = o.x[idx]
		y[i] = o.y[idx]
	}
	o.x = x
	o.y = y
}

// centroid averages every vertex except the worst.
func (o *NelderMead) centroid() []float64 {
	dim := o.Problem().Dim
	c := make([]float64, dim)
	for i := 0; i < dim; i++ {
		for j := range c {
			c[j] += o.x[i][j]
		}
	}
	for j := range c {
		c[j] /= float64(dim)
	}
	return c
}

func (o *NelderMead) pointAlong(c []float64, from []float64, coefficient float64) []float64 {
	problem := o.Problem()
	p := make([]float64, len(c))
	for j := range p {
		p[j] = c[j] + coefficient*(from[j]-c[j])
	}
	return core.Clamp(p, problem.LowerBound, problem.UpperBound)
}

// iterate performs one simplex step and returns the fitness values it spent.
func (o *NelderMead) iterate() []float64 {
	o.sortSimplex()
	worst := len(o.x) - 1
	second := worst - 1
	c := o.centroid()

	reflected := o.pointAlong(c, o.x[worst], -o.alpha)
	yr := o.Evaluate(reflected)
	spent := []float64{yr}

	switch {
	case yr < o.y[0]:
		expanded := o.pointAlong(c, reflected, o.beta)
		ye := o.Evaluate(expanded)
		spent = append(spent, ye)
		if ye < yr {
			o.x[worst], o.y[worst] = expanded, ye
		} else {
			o.x[worst], o.y[worst] = reflected, yr
		}

	case yr < o.y[second]:
		o.x[worst], o.y[worst] = reflected, yr

	case yr < o.y[worst]:
		contracted := o.pointAlong(c, reflected, o.gamma)
		yc := o.Evaluate(contracted)
		spent = append(spent, yc)
		if yc <= yr {
			o.x[worst], o.y[worst] = contracted, yc
		} else {
			spent = append(spent, o.shrink()...)
		}

	default:
		contracted := o.pointAlong(c, o.x[worst], o.gamma)
		yc := o.Evaluate(contracted)
		spent = append(spent, yc)
		if yc < o.y[worst] {
			o.x[worst], o.y[worst] = contracted, yc
		} else {
			spent = append(spent, o.shrink()...)
		}
	}
	return spent
}

// shrink pulls every vertex toward the best one and re-evaluates them.
func (o *NelderMead) shrink() []float64 {
	problem := o.Problem()
	shrunk := make([][]float64, 0, len(o.x)-1)
	for i := 1; i < len(o.x); i++ {
		v := make([]float64, len(o.x[i]))
		for j := range v {
			v[j] = o.x[0][j] + o.delta*(o.x[i][j]-o.x[0][j])
		}
		o.x[i] = core.Clamp(v, problem.LowerBound, problem.UpperBound)
		shrunk = append(shrunk, o.x[i])
	}
	y := o.EvaluateBatch(shrunk)
	copy(o.y[1:], y)
	return y
}

// Optimize runs the simplex loop until a stopping condition holds.
func (o *NelderMead) Optimize(ctx context.Context) (*core.Results, error) {
	o.Start()
	o.initialize()

	y := o.y
	var err error
	for {
		if err = o.CheckContext(ctx); err != nil {
			break
		}
		if o.CheckTermination() {
			break
		}
		y = o.iterate()
		o.PrintVerboseInfo(ctx, y, false)
		o.AdvanceGeneration()
	}
	o.PrintVerboseInfo(ctx, y, true)
	return o.CollectBase(), err
}
