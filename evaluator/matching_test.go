package evaluator

import (
	"testing"
	"time"

	"github.com/strollnet/paceline/types/trajectory"
)

var t0 = time.Date(2024, 1, 14, 11, 0, 0, 0, time.UTC)

// mkTruth lays stays along the route: a 300s dwell at each detector with
// a 600s walk between them, starting startSec after the base time.
func mkTruth(id, walkerID, route string, startSec int) *trajectory.Truth {
	gt := &trajectory.Truth{ID: id, WalkerID: walkerID, Route: route}
	current := t0.Add(time.Duration(startSec) * time.Second)
	for _, r := range route {
		gt.Stays = append(gt.Stays, trajectory.TruthStay{
			DetectorID:   string(r),
			Arrival:      current,
			Departure:    current.Add(300 * time.Second),
			DurationSecs: 300,
		})
		current = current.Add(900 * time.Second)
	}
	return gt
}

// mkEstimate mirrors mkTruth with detections driftSec after each truth
// window boundary.
func mkEstimate(id, route string, startSec, driftSec int) *trajectory.Trajectory {
	est := &trajectory.Trajectory{ID: id, Route: route}
	current := t0.Add(time.Duration(startSec) * time.Second)
	for _, r := range route {
		est.Stays = append(est.Stays, trajectory.Stay{
			DetectorID:     string(r),
			FirstDetection: current.Add(time.Duration(driftSec) * time.Second),
			LastDetection:  current.Add(time.Duration(300+driftSec) * time.Second),
			DurationSecs:   300,
			NumDetections:  10,
		})
		current = current.Add(900 * time.Second)
	}
	return est
}

func TestStaysMatch(t *testing.T) {
	tolerance := 1200 * time.Second
	gt := mkTruth("gt_traj_1", "Walker_1", "AB", 0)

	if !StaysMatch(gt, mkEstimate("est_traj_1", "AB", 0, 0), tolerance) {
		t.Error("exact estimate rejected")
	}
	if !StaysMatch(gt, mkEstimate("est_traj_1", "AB", 0, 600), tolerance) {
		t.Error("drift within tolerance rejected")
	}
	if StaysMatch(gt, mkEstimate("est_traj_1", "AB", 0, 2000), tolerance) {
		t.Error("drift beyond tolerance accepted")
	}
	if StaysMatch(gt, mkEstimate("est_traj_1", "BA", 0, 0), tolerance) {
		t.Error("route mismatch accepted")
	}
}

func TestStaysMatchStayCount(t *testing.T) {
	gt := mkTruth("gt_traj_1", "Walker_1", "AB", 0)
	est := mkEstimate("est_traj_1", "AB", 0, 0)
	est.Stays = est.Stays[:1]
	if StaysMatch(gt, est, 1200*time.Second) {
		t.Error("stay-count mismatch accepted")
	}
}
