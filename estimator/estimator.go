// Package estimator reconstructs individual movement paths from streams
// of ambiguous detection records. A payload hash is shared across carriers
// of one device model, so grouping by hash merges unrelated people; the
// engine partitions each group into per-person clusters using a physical
// feasibility constraint: nobody moves between two detectors faster than
// the configured walking speed allows.
package estimator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/strollnet/paceline/params"
	"github.com/strollnet/paceline/types/detection"
	"github.com/strollnet/paceline/types/detector"
	"github.com/strollnet/paceline/types/trajectory"
)

// Estimator drives multi-pass clustering over grouped detection records.
type Estimator struct {
	cfg Config

	// Integrate folds similar payload hashes into one group key.
	Integrate IntegrateFunc

	logger *slog.Logger
}

func New(registry *detector.Registry, conf params.ClusterConfig) (*Estimator, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, detector.ErrEmptyRegistry
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{
		cfg:       Config{Registry: registry, ClusterConfig: conf},
		Integrate: IntegrateModelFamilies,
		logger:    slog.Default().With("unit", "estimator"),
	}, nil
}

// Result is everything a run produced: the trajectories, the annotated
// groups (records keep their judged/cluster marks for auditing), and the
// residual counts. Unjudged records are noise or unresolved ambiguity;
// callers decide whether that residue is acceptable.
type Result struct {
	Trajectories []*trajectory.Trajectory
	Groups       map[string][]*detection.Record

	Passes          int
	TotalRecords    int
	JudgedRecords   int
	UnjudgedRecords int
}

// Estimate runs clustering passes until a pass judges no new record or
// the pass limit is reached. Each pass extracts at most one cluster per
// group; interleaved carriers sharing a group key resolve over successive
// passes. The context is only consulted between passes.
func (e *Estimator) Estimate(ctx context.Context, records []*detection.Record) (*Result, error) {
	groups := GroupRecords(records, e.Integrate)
	if err := e.checkIntegrity(groups); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(groups))
	total := 0
	for k, recs := range groups {
		keys = append(keys, k)
		total += len(recs)
	}
	sort.Strings(keys)

	res := &Result{
		Groups:       groups,
		TotalRecords: total,
	}

	// Cluster numbering is per group and survives across passes.
	counters := make(map[string]int, len(groups))

	for pass := 1; pass <= e.cfg.MaxPasses; pass++ {
		if ctx.Err() != nil {
			e.logger.Warn("Estimation interrupted", "pass", pass, "error", ctx.Err())
			break
		}
		res.Passes = pass

		judgedBefore := countJudgedGroups(groups)

		for _, key := range keys {
			recs := groups[key]
			if len(recs) == 0 {
				continue
			}
			counters[key]++
			clusterID := fmt.Sprintf("%s_cluster%d", key, counters[key])

			cs, err := extractCluster(recs, clusterID, &e.cfg)
			if err != nil {
				return nil, err
			}
			if cs == nil {
				continue
			}
			// A single-detector cluster is not a movement; its records
			// stay claimed but no trajectory is emitted.
			if len(cs.Route) < 2 {
				e.logger.Debug("Discarding degenerate cluster",
					"cluster", cs.ID, "route", cs.RouteString(), "records", len(cs.Records))
				continue
			}
			t := &trajectory.Trajectory{
				ID:         fmt.Sprintf("est_traj_%d", len(res.Trajectories)+1),
				ClusterIDs: []string{cs.ID},
				Route:      cs.RouteString(),
				Stays:      aggregateStays(cs.Records),
			}
			res.Trajectories = append(res.Trajectories, t)
			e.logger.Info("Cluster formed", "cluster", cs.ID,
				"route", t.Route, "records", len(cs.Records))
		}

		judgedAfter := countJudgedGroups(groups)
		newly := judgedAfter - judgedBefore
		e.logger.Info("Pass complete", "pass", pass,
			"newlyJudged", newly, "judged", judgedAfter, "total", total)

		if newly == 0 {
			// Fixed point: nothing improved with the leftover records.
			break
		}
	}

	res.JudgedRecords = countJudgedGroups(groups)
	res.UnjudgedRecords = total - res.JudgedRecords
	if res.UnjudgedRecords > 0 {
		e.logger.Warn("Unresolved records remain",
			"unjudged", res.UnjudgedRecords, "total", total, "passes", res.Passes)
	}
	return res, nil
}

// checkIntegrity fails fast when a record references a detector the
// registry does not know. Such records are a data-integrity error, not
// noise to be dropped silently.
func (e *Estimator) checkIntegrity(groups map[string][]*detection.Record) error {
	for key, recs := range groups {
		for _, r := range recs {
			if !e.cfg.Registry.Has(r.DetectorID) {
				return fmt.Errorf("group %s: %w: %q", key, detector.ErrUnknownDetector, r.DetectorID)
			}
		}
	}
	return nil
}

func countJudgedGroups(groups map[string][]*detection.Record) int {
	n := 0
	for _, recs := range groups {
		n += detection.CountJudged(recs)
	}
	return n
}
