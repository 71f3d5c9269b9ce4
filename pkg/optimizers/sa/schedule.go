package sa

import "math"

// Schedule provides the annealing temperature for a given iteration of a
// finite run. total is the intended number of iterations; runs without an
// evaluation budget see total as zero and schedules hold their final
// temperature.
type Schedule interface {
	Temperature(iter, total int) float64
}

// ExponentialSchedule cools geometrically from Start to End across the run.
// Both endpoints must be positive.
type ExponentialSchedule struct {
	Start float64
	End   float64
}

func (e ExponentialSchedule) Temperature(iter, total int) float64 {
	if total <= 1 {
		return e.End
	}
	if e.Start <= 0 || e.End <= 0 {
		return 1e-9
	}
	frac := float64(iter) / float64(total-1)
	return e.Start * math.Pow(e.End/e.Start, frac)
}

// LinearSchedule cools linearly from Start to End across the run.
type LinearSchedule struct {
	Start float64
	End   float64
}

func (l LinearSchedule) Temperature(iter, total int) float64 {
	if total <= 1 {
		return l.End
	}
	frac := float64(iter) / float64(total-1)
	return l.Start + frac*(l.End-l.Start)
}
