// Package results archives finished optimization runs: summary records in a
// SQLite database and fitness trajectories as Parquet files.
package results

import (
	"time"

	"github.com/google/uuid"

	"github.com/evolvelab/gopop/pkg/core"
)

// RunRecord is the archived summary of one optimization run.
type RunRecord struct {
	// ID is a unique run identifier.
	ID string

	// Experiment names the campaign the run belongs to.
	Experiment string

	// Optimizer and Problem identify the algorithm/instance pair.
	Optimizer string
	Problem   string

	// Dim is the problem dimensionality.
	Dim int

	// Seed is the run's random seed, Repetition its index within the
	// campaign.
	Seed       int64
	Repetition int

	// BestY is the best objective value found, BestX its position.
	BestY float64
	BestX []float64

	// Evaluations, Generations, and Restarts count the work the run spent.
	Evaluations int
	Generations int
	Restarts    int

	// Runtime is the wall-clock duration of the run.
	Runtime time.Duration

	// Termination names the stopping condition that ended the run.
	Termination string

	// CreatedAt stamps when the record was assembled.
	CreatedAt time.Time

	// Trajectory is the recorded fitness trace. It is exported to Parquet
	// rather than archived in the database.
	Trajectory []core.FitnessRecord
}

// NewRunRecord assembles an archived record from a finished run.
func NewRunRecord(experiment, optimizer string, problem *core.Problem, seed int64, repetition int, res *core.Results) RunRecord {
	rec := RunRecord{
		ID:          uuid.New().String(),
		Experiment:  experiment,
		Optimizer:   optimizer,
		Problem:     problem.Name,
		Dim:         problem.Dim,
		Seed:        seed,
		Repetition:  repetition,
		BestY:       res.BestY,
		BestX:       res.BestX,
		Evaluations: res.NFunctionEvaluations,
		Generations: res.NGenerations,
		Runtime:     res.Runtime,
		Termination: res.Termination.String(),
		CreatedAt:   time.Now().UTC(),
		Trajectory:  res.Fitness,
	}
	if n, ok := res.Extra["n_restart"].(int); ok {
		rec.Restarts = n
	}
	return rec
}
