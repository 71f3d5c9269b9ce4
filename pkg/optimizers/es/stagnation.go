package es

import (
	"math"
)

// StagnationTracker records the best-so-far fitness once per generation and
// signals when the value has failed to decrease over a bounded lookback
// window. The comparison is always made in minimization sense; callers
// normalize the objective sign before recording. The test is one-sided: it
// detects failure to decrease, not oscillation.
type StagnationTracker struct {
	history     []float64
	window      int
	fitnessDiff float64
}

// NewStagnationTracker creates a tracker whose history starts with the given
// initial best-so-far value (positive infinity before any evaluation has
// happened). The window is the number of recorded entries the stagnation test
// looks back over; fitnessDiff is the minimum decrease still counting as
// progress.
func NewStagnationTracker(window int, fitnessDiff, initialBest float64) *StagnationTracker {
	return &StagnationTracker{
		history:     []float64{initialBest},
		window:      window,
		fitnessDiff: fitnessDiff,
	}
}

// RecordAndCheck appends the current best-so-far fitness and reports whether
// the run has stagnated: once the history spans the full window, stagnation
// is signaled when the value window entries back has not decreased by at
// least fitnessDiff. It only signals; triggering a restart is the caller's
// decision.
func (t *StagnationTracker) RecordAndCheck(bestSoFarY float64) bool {
	t.history = append(t.history, bestSoFarY)
	n := len(t.history)
	if n < t.window {
		return false
	}
	return t.history[n-t.window]-t.history[n-1] < t.fitnessDiff
}

// Reset discards the history, replacing it with a single positive-infinity
// sentinel so a stale window cannot immediately re-signal, and installs the
// new window length.
func (t *StagnationTracker) Reset(window int) {
	t.history = []float64{math.Inf(1)}
	t.window = window
}

// HistoryLen returns the number of recorded entries.
func (t *StagnationTracker) HistoryLen() int {
	return len(t.history)
}

// Window returns the current lookback window length.
func (t *StagnationTracker) Window() int {
	return t.window
}
