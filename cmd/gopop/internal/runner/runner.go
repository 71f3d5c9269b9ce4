// Package runner executes the benchmark campaigns described by experiment
// files: every configured optimizer on every configured problem, repeated and
// aggregated.
package runner

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/evolvelab/gopop/cmd/gopop/internal/optimizers"
	"github.com/evolvelab/gopop/pkg/config"
	"github.com/evolvelab/gopop/pkg/core"
	"github.com/evolvelab/gopop/pkg/logging"
	"github.com/evolvelab/gopop/pkg/metrics"
	"github.com/evolvelab/gopop/pkg/results"
)

// PairSummary aggregates the repetitions of one optimizer on one problem.
type PairSummary struct {
	Optimizer string
	Problem   string
	Dim       int
	Summary   metrics.Summary
}

// Report collects everything a finished campaign produced: one record per run
// in execution order, and one summary per optimizer/problem pair.
type Report struct {
	Experiment string
	Records    []results.RunRecord
	Summaries  []PairSummary
}

// Runner drives an experiment through an optimizer registry. Repetitions of
// the same pair execute in parallel up to the experiment's worker bound;
// records always come back in repetition order.
type Runner struct {
	experiment *config.Experiment
	registry   *core.OptimizerRegistry
}

// New builds a runner for the experiment.
func New(experiment *config.Experiment, registry *core.OptimizerRegistry) *Runner {
	return &Runner{experiment: experiment, registry: registry}
}

// Run executes every optimizer on every problem for the configured number of
// repetitions. The first run error aborts the campaign.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	exp := r.experiment
	logger := logging.GetLogger()
	report := &Report{Experiment: exp.Name}

	for _, pc := range exp.Problems {
		problem, err := pc.Problem()
		if err != nil {
			return nil, err
		}
		for _, oc := range exp.Optimizers {
			name := optimizers.CanonicalName(oc.Name)
			records, err := r.runPair(ctx, name, problem)
			if err != nil {
				return nil, err
			}

			runs := make([]metrics.Run, len(records))
			for i, rec := range records {
				runs[i] = metrics.Run{BestY: rec.BestY, Evaluations: rec.Evaluations}
			}
			summary := metrics.Summarize(runs, exp.Target)

			report.Records = append(report.Records, records...)
			report.Summaries = append(report.Summaries, PairSummary{
				Optimizer: name,
				Problem:   problem.Name,
				Dim:       problem.Dim,
				Summary:   summary,
			})
			logger.Info(ctx, "completed %s on %s: success %d/%d, ert %.4g, best median %.4e",
				name, problem.Name, summary.Successes, summary.Runs, summary.ERT, summary.BestMedian)
		}
	}
	return report, nil
}

// runPair executes the repetitions of one optimizer on one problem.
func (r *Runner) runPair(ctx context.Context, name string, problem *core.Problem) ([]results.RunRecord, error) {
	exp := r.experiment
	records := make([]results.RunRecord, exp.Repetitions)

	workers := exp.Workers
	if workers < 1 {
		workers = 1
	}

	p := pool.New().WithErrors().WithMaxGoroutines(workers)
	for rep := 0; rep < exp.Repetitions; rep++ {
		rep := rep
		p.Go(func() error {
			options := exp.Options(rep)
			opt, err := r.registry.Create(name, problem, options)
			if err != nil {
				return err
			}

			// Tag progress lines: parallel repetitions interleave on stderr.
			runCtx := logging.WithOptimizerName(ctx, name)
			runCtx = logging.WithRunID(runCtx, fmt.Sprintf("%s:%d", problem.Name, rep))

			res, err := opt.Optimize(runCtx)
			if err != nil {
				return err
			}
			records[rep] = results.NewRunRecord(exp.Name, name, problem, options.Seed, rep, res)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
