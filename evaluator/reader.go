package evaluator

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/strollnet/paceline/types/trajectory"
)

// ReadTruths loads a ground-truth trajectories.json.
func ReadTruths(path string) ([]*trajectory.Truth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var truths []*trajectory.Truth
	var parseErr error
	gjson.GetBytes(data, "trajectories").ForEach(func(_, t gjson.Result) bool {
		truth := &trajectory.Truth{
			ID:       t.Get("trajectory_id").String(),
			WalkerID: t.Get("walker_id").String(),
			Route:    t.Get("route").String(),
		}
		t.Get("stays").ForEach(func(_, s gjson.Result) bool {
			arrival, err := parseStayTime(s, "arrival_time", "first_detection")
			if err != nil {
				parseErr = err
				return false
			}
			departure, err := parseStayTime(s, "departure_time", "last_detection")
			if err != nil {
				parseErr = err
				return false
			}
			truth.Stays = append(truth.Stays, trajectory.TruthStay{
				DetectorID:   s.Get("detector_id").String(),
				Arrival:      arrival,
				Departure:    departure,
				DurationSecs: s.Get("duration_seconds").Float(),
			})
			return true
		})
		truths = append(truths, truth)
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, fmt.Errorf("read truths %s: %w", path, parseErr)
	}
	return truths, nil
}

// ReadEstimates loads an estimated trajectories.json.
func ReadEstimates(path string) ([]*trajectory.Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ests []*trajectory.Trajectory
	var parseErr error
	gjson.GetBytes(data, "trajectories").ForEach(func(_, t gjson.Result) bool {
		est := &trajectory.Trajectory{
			ID:    t.Get("trajectory_id").String(),
			Route: t.Get("route").String(),
		}
		t.Get("cluster_ids").ForEach(func(_, c gjson.Result) bool {
			est.ClusterIDs = append(est.ClusterIDs, c.String())
			return true
		})
		t.Get("stays").ForEach(func(_, s gjson.Result) bool {
			first, err := parseStayTime(s, "first_detection", "arrival_time")
			if err != nil {
				parseErr = err
				return false
			}
			last, err := parseStayTime(s, "last_detection", "departure_time")
			if err != nil {
				parseErr = err
				return false
			}
			est.Stays = append(est.Stays, trajectory.Stay{
				DetectorID:     s.Get("detector_id").String(),
				FirstDetection: first,
				LastDetection:  last,
				DurationSecs:   s.Get("duration_seconds").Float(),
				NumDetections:  int(s.Get("num_detections").Int()),
			})
			return true
		})
		ests = append(ests, est)
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, fmt.Errorf("read estimates %s: %w", path, parseErr)
	}
	return ests, nil
}

// parseStayTime accepts either field name, so a ground-truth file and an
// estimate file can share one reader.
func parseStayTime(s gjson.Result, primary, fallback string) (time.Time, error) {
	v := s.Get(primary)
	if !v.Exists() {
		v = s.Get(fallback)
	}
	if !v.Exists() {
		return time.Time{}, fmt.Errorf("stay missing %s/%s", primary, fallback)
	}
	t, err := time.Parse(time.RFC3339Nano, v.String())
	if err != nil {
		return time.Time{}, fmt.Errorf("stay %s: %w", primary, err)
	}
	return t, nil
}
