package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name   string
		runs   []Run
		target float64
		want   float64
	}{
		{
			name:   "All runs reach the target",
			runs:   []Run{{BestY: 0.5}, {BestY: 0.9}},
			target: 1.0,
			want:   1.0,
		},
		{
			name:   "No run reaches the target",
			runs:   []Run{{BestY: 2.0}, {BestY: 3.0}},
			target: 1.0,
			want:   0.0,
		},
		{
			name:   "Half of the runs reach the target",
			runs:   []Run{{BestY: 0.5}, {BestY: 2.0}},
			target: 1.0,
			want:   0.5,
		},
		{
			name:   "Hitting the target exactly counts",
			runs:   []Run{{BestY: 1.0}},
			target: 1.0,
			want:   1.0,
		},
		{
			name:   "No runs",
			runs:   nil,
			target: 1.0,
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuccessRate(tt.runs, tt.target))
		})
	}
}

func TestERT(t *testing.T) {
	t.Run("All runs successful", func(t *testing.T) {
		runs := []Run{
			{BestY: 0.1, Evaluations: 100},
			{BestY: 0.2, Evaluations: 200},
		}
		assert.Equal(t, 150.0, ERT(runs, 1.0))
	})

	t.Run("Failed runs charge their evaluations to the successes", func(t *testing.T) {
		runs := []Run{
			{BestY: 0.1, Evaluations: 100},
			{BestY: 5.0, Evaluations: 1000},
		}
		assert.Equal(t, 1100.0, ERT(runs, 1.0))
	})

	t.Run("No successful run", func(t *testing.T) {
		runs := []Run{
			{BestY: 5.0, Evaluations: 1000},
			{BestY: 7.0, Evaluations: 1000},
		}
		assert.True(t, math.IsInf(ERT(runs, 1.0), 1))
	})

	t.Run("No runs", func(t *testing.T) {
		assert.True(t, math.IsInf(ERT(nil, 1.0), 1))
	})
}

func TestBestValues(t *testing.T) {
	runs := []Run{{BestY: 3.0}, {BestY: 1.0}, {BestY: 2.0}}
	assert.Equal(t, []float64{3.0, 1.0, 2.0}, BestValues(runs))
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{
			name:   "Minimum at p zero",
			values: []float64{3, 1, 2},
			p:      0.0,
			want:   1.0,
		},
		{
			name:   "Maximum at p one",
			values: []float64{3, 1, 2},
			p:      1.0,
			want:   3.0,
		},
		{
			name:   "Median of an even count",
			values: []float64{4, 1, 3, 2},
			p:      0.5,
			want:   2.0,
		},
		{
			name:   "Median of an odd count",
			values: []float64{5, 1, 3, 2, 4},
			p:      0.5,
			want:   3.0,
		},
		{
			name:   "First quartile",
			values: []float64{1, 2, 3, 4},
			p:      0.25,
			want:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantile(tt.values, tt.p))
		})
	}
}

func TestQuantileDoesNotModifyInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestSummarize(t *testing.T) {
	runs := []Run{
		{BestY: 0.5, Evaluations: 100},
		{BestY: 2.0, Evaluations: 500},
		{BestY: 0.1, Evaluations: 80},
		{BestY: 4.0, Evaluations: 500},
	}

	s := Summarize(runs, 1.0)

	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 1.0, s.Target)
	assert.Equal(t, 2, s.Successes)
	assert.Equal(t, 0.5, s.SuccessRate)
	assert.Equal(t, 590.0, s.ERT)
	assert.Equal(t, 0.1, s.BestMin)
	assert.Equal(t, 0.5, s.BestMedian)
	assert.Equal(t, 4.0, s.BestMax)
	assert.InDelta(t, 1.65, s.BestMean, 1e-12)
	assert.InDelta(t, math.Sqrt(9.37/3.0), s.BestStdDev, 1e-12)
	assert.Equal(t, 295.0, s.MeanEvaluations)
}

func TestSummarizeSingleRun(t *testing.T) {
	s := Summarize([]Run{{BestY: 0.2, Evaluations: 50}}, 1.0)

	assert.Equal(t, 1, s.Runs)
	assert.Equal(t, 1.0, s.SuccessRate)
	assert.Equal(t, 50.0, s.ERT)
	assert.Equal(t, 0.2, s.BestMin)
	assert.Equal(t, 0.2, s.BestMedian)
	assert.Equal(t, 0.2, s.BestMax)
	assert.Equal(t, 0.0, s.BestStdDev)
}

func TestSummarizeNoSuccesses(t *testing.T) {
	runs := []Run{
		{BestY: 5.0, Evaluations: 1000},
		{BestY: 6.0, Evaluations: 1000},
	}

	s := Summarize(runs, 1.0)

	assert.Equal(t, 0, s.Successes)
	assert.Equal(t, 0.0, s.SuccessRate)
	assert.True(t, math.IsInf(s.ERT, 1))
	assert.Equal(t, 5.0, s.BestMin)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 1.0)

	assert.Equal(t, 0, s.Runs)
	assert.Equal(t, 0.0, s.SuccessRate)
	assert.True(t, math.IsInf(s.ERT, 1))
}
