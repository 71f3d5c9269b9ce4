package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Run holds the per-run quantities the aggregations below consume. BestY is
// the best objective value found, in minimization sense.
type Run struct {
	BestY       float64
	Evaluations int
}

// SuccessRate returns the fraction of runs whose best objective value reached
// the target. An empty slice yields 0.
func SuccessRate(runs []Run, target float64) float64 {
	if len(runs) == 0 {
		return 0.0
	}
	return float64(countSuccesses(runs, target)) / float64(len(runs))
}

// ERT returns the expected running time to reach the target: the total number
// of evaluations spent across all runs, successful or not, divided by the
// number of successful runs. Returns +Inf when no run reached the target.
func ERT(runs []Run, target float64) float64 {
	successes := countSuccesses(runs, target)
	if successes == 0 {
		return math.Inf(1)
	}

	var total int
	for _, r := range runs {
		total += r.Evaluations
	}
	return float64(total) / float64(successes)
}

func countSuccesses(runs []Run, target float64) int {
	var n int
	for _, r := range runs {
		if r.BestY <= target {
			n++
		}
	}
	return n
}

// BestValues extracts the best objective values of runs, in run order.
func BestValues(runs []Run) []float64 {
	values := make([]float64, len(runs))
	for i, r := range runs {
		values[i] = r.BestY
	}
	return values
}

// Quantile returns the p-quantile of values as an observed sample value
// (empirical quantile). The input is left unmodified.
func Quantile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Summary aggregates repeated runs of one optimizer on one problem at a fixed
// target value.
type Summary struct {
	Runs        int
	Target      float64
	Successes   int
	SuccessRate float64
	ERT         float64

	BestMin    float64
	BestMedian float64
	BestMax    float64
	BestMean   float64
	BestStdDev float64

	MeanEvaluations float64
}

// Summarize computes the full cross-run summary. An empty slice yields a zero
// summary with infinite ERT.
func Summarize(runs []Run, target float64) Summary {
	s := Summary{Runs: len(runs), Target: target, ERT: math.Inf(1)}
	if len(runs) == 0 {
		return s
	}

	s.Successes = countSuccesses(runs, target)
	s.SuccessRate = float64(s.Successes) / float64(len(runs))
	if s.Successes > 0 {
		s.ERT = ERT(runs, target)
	}

	best := BestValues(runs)
	sort.Float64s(best)
	s.BestMin = best[0]
	s.BestMedian = stat.Quantile(0.5, stat.Empirical, best, nil)
	s.BestMax = best[len(best)-1]
	s.BestMean = stat.Mean(best, nil)
	if len(best) > 1 {
		// Sample standard deviation is undefined for a single run.
		s.BestStdDev = stat.StdDev(best, nil)
	}

	evals := make([]float64, len(runs))
	for i, r := range runs {
		evals[i] = float64(r.Evaluations)
	}
	s.MeanEvaluations = stat.Mean(evals, nil)

	return s
}
