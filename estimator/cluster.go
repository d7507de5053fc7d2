package estimator

import (
	"strings"

	"github.com/strollnet/paceline/types/detection"
)

// ClusterState is the in-progress cluster: one inferred person's records,
// the distinct-consecutive route of detectors visited, and the last
// accepted record, which anchors all feasibility arithmetic.
type ClusterState struct {
	ID      string
	Records []*detection.Record
	Route   []string

	last *detection.Record
}

func newClusterState(id string, first *detection.Record) *ClusterState {
	s := &ClusterState{ID: id}
	s.addRecord(first, true)
	return s
}

// addRecord claims the record for this cluster. The record is marked
// judged exactly once and never reconsidered by a later pass. With
// extendRoute, a detector differing from the route tail is appended;
// same-detector repeats are absorbed into the stay.
func (s *ClusterState) addRecord(rec *detection.Record, extendRoute bool) {
	rec.Judged = true
	rec.ClusterID = s.ID
	s.Records = append(s.Records, rec)
	if extendRoute {
		if len(s.Route) == 0 || rec.DetectorID != s.Route[len(s.Route)-1] {
			s.Route = append(s.Route, rec.DetectorID)
		}
	}
	s.last = rec
}

// routeTail is the cluster's current position.
func (s *ClusterState) routeTail() string {
	if len(s.Route) == 0 {
		return ""
	}
	return s.Route[len(s.Route)-1]
}

// visited reports whether the detector appears anywhere in the route.
func (s *ClusterState) visited(detectorID string) bool {
	for _, id := range s.Route {
		if id == detectorID {
			return true
		}
	}
	return false
}

func (s *ClusterState) RouteString() string {
	return strings.Join(s.Route, "")
}

// extractCluster carves exactly one cluster out of a group's time-sorted
// records: it seeds from the first unjudged record, then walks forward
// applying the candidate judge, bridging infeasibilities with forward
// search. Returns nil when the group holds no unjudged record.
func extractCluster(records []*detection.Record, clusterID string, cfg *Config) (*ClusterState, error) {
	start := 0
	for start < len(records) && records[start].Judged {
		start++
	}
	if start >= len(records) {
		return nil, nil
	}

	s := newClusterState(clusterID, records[start])

	i := start + 1
	for i < len(records) {
		cand := records[i]
		if cand.Judged {
			i++
			continue
		}

		action, err := judgeCandidate(s, cand, cfg)
		if err != nil {
			return nil, err
		}
		switch action {
		case ActionStay:
			s.addRecord(cand, false)
			i++
		case ActionMove:
			s.addRecord(cand, true)
			i++
		case ActionForwardSearch:
			bridge, ok, err := forwardSearch(s, records, i, cfg)
			if err != nil {
				return nil, err
			}
			if !ok {
				// Skipped records stay unjudged for a later pass.
				return s, nil
			}
			s.addRecord(records[bridge], true)
			i = bridge + 1
		}
	}
	return s, nil
}
