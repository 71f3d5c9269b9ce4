// Package gopop is a Go library of population-based and single-state
// optimizers for black-box continuous objectives.
//
// gopop provides a collection of derivative-free optimization algorithms,
// benchmark functions, and campaign tooling for comparing them. It focuses on
// making it easy to:
//   - Minimize (or maximize) an arbitrary objective over box bounds
//   - Reproduce any run exactly from a seed
//   - Restart stalled searches with a growing population
//   - Benchmark algorithms against each other across repeated runs
//   - Archive results for later analysis
//
// Key Components:
//
//   - Core: Fundamental abstractions like Problem, Options, Optimizer and the
//     optimizer registry, plus the shared run bookkeeping every algorithm
//     builds on (evaluation counting, best-so-far tracking, termination,
//     fitness trajectories).
//
//   - Optimizers: The built-in algorithm families:
//     * es.CSAES: (mu/mu_w, lambda) evolution strategy with cumulative
//       step-size adaptation, log-rank recombination weights, stagnation
//       detection, and restarts that double the population
//     * es.RES: Rechenberg's (1+1) evolution strategy with the 1/5th success
//       rule, sharing the same restart machinery
//     * de.DE: classic DE/rand/1/bin differential evolution
//     * sa.SA: simulated annealing with pluggable cooling schedules
//     * ds.NelderMead, ds.HookeJeeves: derivative-free direct search
//
//   - Benchmarks: A catalog of standard test functions (sphere, cigar,
//     ellipsoid, rosenbrock, ackley, rastrigin, ...) with conventional
//     bounds, plus seeded shift and rotation transformations for building
//     harder instances.
//
//   - Metrics: Cross-run aggregation of repeated trials: success rate at a
//     target, expected running time (ERT), and best-value quantiles.
//
//   - Config: YAML experiment documents describing whole campaigns (which
//     optimizers on which problems, how often, under what budget), validated
//     before anything runs.
//
//   - Results: Run records with unique ids, a SQLite archive for summaries,
//     and Parquet export for recorded fitness trajectories.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/evolvelab/gopop/pkg/benchmarks"
//	    "github.com/evolvelab/gopop/pkg/core"
//	    "github.com/evolvelab/gopop/pkg/optimizers/es"
//	)
//
//	func main() {
//	    // Build a 10-dimensional rastrigin instance from the catalog
//	    fn, err := benchmarks.Lookup("rastrigin")
//	    if err != nil {
//	        log.Fatalf("Failed to look up function: %v", err)
//	    }
//	    problem, err := fn.Problem(10)
//	    if err != nil {
//	        log.Fatalf("Failed to build problem: %v", err)
//	    }
//
//	    // Budget and seed the run
//	    options := core.DefaultOptions()
//	    options.MaxFunctionEvaluations = 100000
//	    options.Seed = 42
//
//	    // Run CSA-ES with an initial step size of 2
//	    opt, err := es.NewCSAES(problem, es.Config{Sigma: 2}, options)
//	    if err != nil {
//	        log.Fatalf("Failed to create optimizer: %v", err)
//	    }
//	    res, err := opt.Optimize(context.Background())
//	    if err != nil {
//	        log.Fatalf("Optimization failed: %v", err)
//	    }
//
//	    fmt.Printf("best y = %.6e after %d evaluations (%v restarts)\n",
//	        res.BestY, res.NFunctionEvaluations, res.Extra["n_restart"])
//	}
//
// Advanced Features:
//
//   - Restarts: The evolution strategies watch for step-size collapse and
//     fitness stagnation, and on either trigger restart from a fresh mean
//     with a doubled population, without losing the best point found so far.
//
//   - Custom Objectives: Any func([]float64) float64 works as an objective.
//     Maximization is handled by negation at the edge, so algorithm internals
//     always minimize.
//
//   - Parallel Evaluation: Options.Workers fans one generation's offspring
//     evaluations out over a goroutine pool while the state update stays
//     sequential and deterministic.
//
//   - Termination: Runs stop on an evaluation budget, a wall-clock budget, a
//     fitness threshold, or context cancellation, and report which one fired.
//
//   - Tracing and Logging: Structured leveled logging with run-scoped fields,
//     and optional fitness trajectory recording at a configurable sampling
//     interval.
//
//   - Error Handling: Coded, structured errors with attached fields for
//     programmatic handling of invalid inputs, unknown resources, and
//     storage failures.
//
// Running Campaigns:
//
//	// experiment.yaml
//	//
//	// name: es-vs-de
//	// repetitions: 25
//	// seed: 7
//	// workers: 4
//	// target: 1.0e-8
//	// problems:
//	//   - function: sphere
//	//     dim: 10
//	//   - function: rastrigin
//	//     dim: 10
//	//     shift_seed: 3
//	// optimizers:
//	//   - name: csaes
//	//     params: {sigma: 2.0}
//	//   - name: de
//	// budget:
//	//   max_function_evaluations: 100000
//	// output:
//	//   sqlite: runs.db
//
//	exp, err := config.Load("experiment.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry, err := optimizers.NewRegistry(exp.Optimizers)
//	...
//
// The same campaign runs from the command line with 'gopop bench
// experiment.yaml'; see cmd/gopop.
//
// For more examples and detailed documentation, visit:
// https://github.com/evolvelab/gopop
//
// gopop is released under the MIT License.
package gopop
