// Package evaluator scores estimated trajectories against ground truth.
// Routes are compared as route-plus-timing signatures so that two crowds
// walking the same spatial route in different hours count separately.
package evaluator

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/strollnet/paceline/params"
	"github.com/strollnet/paceline/types/trajectory"
)

// RouteStat is one signed-route bucket's tally.
type RouteStat struct {
	Route    string   `json:"route"`
	GTCount  int      `json:"gt_count"`
	EstCount int      `json:"est_count"`
	Error    int      `json:"error"`
	GTIDs    []string `json:"gt_trajectory_ids,omitempty"`
	EstIDs   []string `json:"est_trajectory_ids,omitempty"`
}

// PartialRoute is an estimate excluded from scoring because it does not
// cover every detector in the arena.
type PartialRoute struct {
	TrajectoryID string `json:"trajectory_id"`
	Route        string `json:"route"`
}

type Report struct {
	Routes   []RouteStat    `json:"routes"`
	Metrics  Metrics        `json:"metrics"`
	Partials []PartialRoute `json:"partial_routes,omitempty"`

	TotalGT       int `json:"total_gt_count"`
	TotalEst      int `json:"total_est_count"`
	CompleteRoute int `json:"complete_route_count"`
}

// Evaluate buckets ground-truth and estimated trajectories by
// route-plus-timing signature, matches estimates to truths within the
// tolerance, and computes count-error metrics over the buckets.
func Evaluate(truths []*trajectory.Truth, estimates []*trajectory.Trajectory, cfg params.EvaluateConfig) *Report {
	routeStats := make(map[string]*RouteStat)

	// Every detector seen in the truth set; estimates must cover them
	// all to count as a complete route.
	allDetectors := make(map[string]bool)
	for _, gt := range truths {
		for _, stay := range gt.Stays {
			allDetectors[stay.DetectorID] = true
		}
	}

	for _, gt := range truths {
		sig := truthSignature(gt)
		rs := routeStats[sig]
		if rs == nil {
			rs = &RouteStat{Route: sig}
			routeStats[sig] = rs
		}
		rs.GTCount++
		rs.GTIDs = append(rs.GTIDs, gt.ID)
	}

	rep := &Report{TotalGT: len(truths), TotalEst: len(estimates)}

	for _, est := range estimates {
		if !coversAll(est.Route, allDetectors) {
			rep.Partials = append(rep.Partials, PartialRoute{TrajectoryID: est.ID, Route: est.Route})
			continue
		}
		rep.CompleteRoute++

		sig := ""
		for _, gt := range truths {
			if gt.Route != est.Route {
				continue
			}
			if StaysMatch(gt, est, cfg.Tolerance) {
				sig = truthSignature(gt)
				break
			}
		}
		if sig == "" {
			// No truth within tolerance: this estimate is its own
			// (spurious) route bucket.
			sig = estimateSignature(est)
		}
		rs := routeStats[sig]
		if rs == nil {
			rs = &RouteStat{Route: sig}
			routeStats[sig] = rs
		}
		rs.EstCount++
		rs.EstIDs = append(rs.EstIDs, est.ID)
	}

	errors := make([]int, 0, len(routeStats))
	for _, rs := range routeStats {
		rs.Error = rs.GTCount - rs.EstCount
		if rs.Error < 0 {
			rs.Error = -rs.Error
		}
		errors = append(errors, rs.Error)
		rep.Routes = append(rep.Routes, *rs)
	}
	sort.Slice(rep.Routes, func(i, j int) bool { return rep.Routes[i].Route < rep.Routes[j].Route })

	rep.Metrics = computeMetrics(errors)
	slog.Info("Evaluation complete",
		"routes", rep.Metrics.TotalRoutes, "mae", rep.Metrics.MAE,
		"rmse", rep.Metrics.RMSE, "trackingRate", rep.Metrics.TrackingRate,
		"partials", len(rep.Partials))
	return rep
}

func coversAll(route string, detectors map[string]bool) bool {
	seen := make(map[string]bool, len(route))
	for _, r := range route {
		seen[string(r)] = true
	}
	for id := range detectors {
		if !seen[id] {
			return false
		}
	}
	return true
}

// truthSignature appends each dwell window to the spatial route, HHMM,
// so same-route crowds in different hours stay distinct.
func truthSignature(gt *trajectory.Truth) string {
	parts := make([]string, 0, len(gt.Stays))
	for _, s := range gt.Stays {
		parts = append(parts, windowPart(s.Arrival, s.Departure))
	}
	return gt.Route + "_" + strings.Join(parts, "_")
}

func estimateSignature(est *trajectory.Trajectory) string {
	parts := make([]string, 0, len(est.Stays))
	for _, s := range est.Stays {
		parts = append(parts, windowPart(s.FirstDetection, s.LastDetection))
	}
	return est.Route + "_" + strings.Join(parts, "_")
}

func windowPart(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("1504"), end.Format("1504"))
}
