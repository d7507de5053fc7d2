package estimator

import (
	"log/slog"

	"github.com/strollnet/paceline/params"
	"github.com/strollnet/paceline/types/detection"
	"github.com/strollnet/paceline/types/detector"
)

// Config bundles the registry and tuning for all clustering decisions.
type Config struct {
	Registry *detector.Registry
	params.ClusterConfig
}

// Action is the candidate judge's verdict on the next unprocessed record.
type Action int

const (
	// ActionStay absorbs a same-detector continuation into the current
	// stay. The route does not grow.
	ActionStay Action = iota

	// ActionMove accepts a feasible transition to a new detector and
	// extends the route.
	ActionMove

	// ActionForwardSearch rejects the record as-is (infeasible move,
	// overrun stay, or loop-forming revisit) and asks the caller to
	// bridge ahead.
	ActionForwardSearch
)

func (a Action) String() string {
	switch a {
	case ActionStay:
		return "stay"
	case ActionMove:
		return "move"
	case ActionForwardSearch:
		return "forward-search"
	}
	return "unknown"
}

// impossible reports whether elapsed seconds undercut the slack-scaled
// minimum travel time.
func (c *Config) impossible(elapsed, minTravel float64) bool {
	return elapsed < minTravel*c.ImpossibleFactor
}

// seqAnomaly reports a large sequence-number jump coinciding with an
// infeasible move. Consecutive bursts from one device carry nearby
// sequence numbers, so the combination suggests a different carrier.
func (c *Config) seqAnomaly(prev, cand *detection.Record, elapsed, minTravel float64) bool {
	return prev.SeqDelta(cand) > c.SeqAnomalyDelta && c.impossible(elapsed, minTravel)
}

// judgeCandidate classifies the next time-ordered record against the
// cluster's current position. It is a pure decision; the caller applies
// the verdict. Errors only on a detector missing from the registry.
func judgeCandidate(s *ClusterState, cand *detection.Record, cfg *Config) (Action, error) {
	last := s.last

	if cand.DetectorID == s.routeTail() {
		if cfg.AllowLongStays {
			return ActionStay, nil
		}
		gap := cand.Time.Sub(last.Time)
		if gap <= cfg.MaxStayDuration {
			return ActionStay, nil
		}
		// A gap this long at rest may be a different person arriving.
		slog.Debug("Stay overrun", "cluster", s.ID,
			"detector", cand.DetectorID, "gap", gap, "max", cfg.MaxStayDuration)
		return ActionForwardSearch, nil
	}

	// A revisit to an earlier route detector would knot the route.
	// Routes are repeat-free by construction; bridge past it.
	if s.visited(cand.DetectorID) {
		return ActionForwardSearch, nil
	}

	elapsed := cand.Time.Sub(last.Time).Seconds()
	minTravel, err := cfg.Registry.MinTravelTime(last.DetectorID, cand.DetectorID, cfg.WalkerSpeed)
	if err != nil {
		return 0, err
	}

	// Informative only here; the forward-search scan enforces it.
	if cfg.seqAnomaly(last, cand, elapsed, minTravel) {
		slog.Debug("Sequence anomaly", "cluster", s.ID,
			"from", last.DetectorID, "to", cand.DetectorID,
			"seqDelta", last.SeqDelta(cand), "elapsed", elapsed, "minTravel", minTravel)
	}

	if cfg.impossible(elapsed, minTravel) {
		slog.Debug("Impossible movement", "cluster", s.ID,
			"from", last.DetectorID, "to", cand.DetectorID,
			"elapsed", elapsed, "minTravel", minTravel)
		return ActionForwardSearch, nil
	}
	return ActionMove, nil
}
