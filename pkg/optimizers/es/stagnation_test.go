package es

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagnationFiresExactlyAtWindow(t *testing.T) {
	const window = 50
	tracker := NewStagnationTracker(window, 1e-20, math.Inf(1))

	// A constant best-so-far value must not signal before the window has
	// fully elapsed, and must signal exactly when it has.
	for k := 1; k < window; k++ {
		assert.False(t, tracker.RecordAndCheck(1.0), "record %d", k)
	}
	assert.True(t, tracker.RecordAndCheck(1.0))
}

func TestStagnationSteadyProgressNeverFires(t *testing.T) {
	const window = 20
	tracker := NewStagnationTracker(window, 1e-20, math.Inf(1))

	v := 1000.0
	for k := 0; k < 5*window; k++ {
		v -= 0.5
		assert.False(t, tracker.RecordAndCheck(v), "record %d", k)
	}
}

func TestStagnationTestIsOneSided(t *testing.T) {
	// The test only detects failure to decrease. A worsening sequence also
	// counts as stagnation, since the lookback difference is negative.
	const window = 10
	tracker := NewStagnationTracker(window, 1e-20, math.Inf(1))

	fired := false
	for k := 1; k <= 2*window; k++ {
		if tracker.RecordAndCheck(float64(k)) {
			fired = true
			break
		}
	}
	assert.True(t, fired)
}

func TestStagnationBelowThresholdProgressFires(t *testing.T) {
	const window = 10
	tracker := NewStagnationTracker(window, 1e-6, math.Inf(1))

	// Progress smaller than fitnessDiff per window does not count.
	v := 1.0
	fired := false
	for k := 0; k < 3*window; k++ {
		v -= 1e-9
		if tracker.RecordAndCheck(v) {
			fired = true
			break
		}
	}
	assert.True(t, fired)
}

func TestStagnationReset(t *testing.T) {
	const window = 5
	tracker := NewStagnationTracker(window, 1e-20, math.Inf(1))

	for k := 0; k < window; k++ {
		tracker.RecordAndCheck(2.0)
	}
	require.True(t, tracker.RecordAndCheck(2.0))

	tracker.Reset(2 * window)
	assert.Equal(t, 1, tracker.HistoryLen())
	assert.Equal(t, 2*window, tracker.Window())

	// The sentinel guarantees the stale window cannot immediately re-fire:
	// a full new window must elapse first.
	for k := 1; k < 2*window; k++ {
		assert.False(t, tracker.RecordAndCheck(2.0), "record %d", k)
	}
	assert.True(t, tracker.RecordAndCheck(2.0))
}

func TestStagnationHistoryGrowsUnbounded(t *testing.T) {
	tracker := NewStagnationTracker(1000, 1e-20, math.Inf(1))
	for k := 0; k < 100; k++ {
		tracker.RecordAndCheck(float64(k))
	}
	// History is never truncated; only the window tail is read.
	assert.Equal(t, 101, tracker.HistoryLen())
}
