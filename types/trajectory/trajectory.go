// Package trajectory holds the reconstructed-path output types and their
// ground-truth counterparts.
package trajectory

import "time"

// Stay summarizes a contiguous run of detections at one detector.
// It is purely derived from the records of a finished cluster.
type Stay struct {
	DetectorID     string    `json:"detector_id"`
	FirstDetection time.Time `json:"first_detection"`
	LastDetection  time.Time `json:"last_detection"`
	DurationSecs   float64   `json:"duration_seconds"`
	NumDetections  int       `json:"num_detections"`
}

// Trajectory is one inferred person's route: the concatenated detector
// sequence plus the per-detector stays. Immutable after creation.
type Trajectory struct {
	ID         string   `json:"trajectory_id"`
	ClusterIDs []string `json:"cluster_ids"`
	Route      string   `json:"route"`
	Stays      []Stay   `json:"stays"`
}

// TruthStay is a ground-truth dwell interval from the simulator.
type TruthStay struct {
	DetectorID   string    `json:"detector_id"`
	Arrival      time.Time `json:"arrival_time"`
	Departure    time.Time `json:"departure_time"`
	DurationSecs float64   `json:"duration_seconds"`
}

// Truth is one walker's actual route, used only for offline scoring.
type Truth struct {
	ID       string      `json:"trajectory_id"`
	WalkerID string      `json:"walker_id"`
	Route    string      `json:"route"`
	Stays    []TruthStay `json:"stays"`
}
