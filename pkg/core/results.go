package core

import (
	"time"
)

// Termination names the condition that ended a run.
type Termination int

const (
	// TerminationNone means the run has not terminated.
	TerminationNone Termination = iota
	// TerminationMaxEvaluations means the evaluation budget was exhausted.
	TerminationMaxEvaluations
	// TerminationFitnessThreshold means the target fitness was reached.
	TerminationFitnessThreshold
	// TerminationMaxRuntime means the wall-clock budget was exhausted.
	TerminationMaxRuntime
	// TerminationCanceled means the context was canceled.
	TerminationCanceled
)

// String provides human-readable termination conditions.
func (t Termination) String() string {
	switch t {
	case TerminationNone:
		return "none"
	case TerminationMaxEvaluations:
		return "max_function_evaluations"
	case TerminationFitnessThreshold:
		return "fitness_threshold"
	case TerminationMaxRuntime:
		return "max_runtime"
	case TerminationCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// FitnessRecord is one sample of the fitness trajectory: the objective value
// observed at a given evaluation count.
type FitnessRecord struct {
	Evaluations int
	Y           float64
}

// Results holds everything a finished run reports. Optimizer families append
// their own state (mean, step size, restart count) through Extra.
type Results struct {
	// BestX is the best candidate found.
	BestX []float64
	// BestY is the fitness of BestX, in the problem's objective sense.
	BestY float64
	// NFunctionEvaluations counts objective evaluations spent.
	NFunctionEvaluations int
	// NGenerations counts generations run, including those cut short by a
	// restart.
	NGenerations int
	// Runtime is the wall-clock duration of the run.
	Runtime time.Duration
	// Termination names the stopping condition that ended the run.
	Termination Termination
	// Fitness is the recorded trajectory, empty unless SavingFitness was set.
	Fitness []FitnessRecord
	// Extra carries family-specific state merged in by each optimizer.
	Extra map[string]interface{}
}
