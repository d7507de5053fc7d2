package evaluator

import (
	"time"

	"github.com/strollnet/paceline/types/trajectory"
)

// StaysMatch reports whether an estimated trajectory can be the same
// person as a ground-truth one: identical route, same stay count, and
// every estimated stay's first and last detection inside the truth stay's
// dwell window widened by the tolerance on both sides.
func StaysMatch(gt *trajectory.Truth, est *trajectory.Trajectory, tolerance time.Duration) bool {
	if gt.Route != est.Route {
		return false
	}
	if len(gt.Stays) != len(est.Stays) {
		return false
	}
	for i := range gt.Stays {
		gtStay := gt.Stays[i]
		estStay := est.Stays[i]
		if gtStay.DetectorID != estStay.DetectorID {
			return false
		}
		lo := gtStay.Arrival.Add(-tolerance)
		hi := gtStay.Departure.Add(tolerance)
		if !within(estStay.FirstDetection, lo, hi) {
			return false
		}
		if !within(estStay.LastDetection, lo, hi) {
			return false
		}
	}
	return true
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
