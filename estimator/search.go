package estimator

import (
	"log/slog"

	"github.com/strollnet/paceline/types/detection"
)

// scanVerdict is the forward-search judgment on one scanned record.
type scanVerdict int

const (
	// scanSkip passes over the record: already claimed, loop-forming,
	// sequence-anomalous, or unreachable.
	scanSkip scanVerdict = iota

	// scanAbsorb folds a same-place continuation into the current stay
	// and keeps scanning.
	scanAbsorb

	// scanFound is the bridge target: the first record reachable from
	// the cluster's current position.
	scanFound
)

// judgeScan classifies one record during forward search. Unlike the
// candidate judge, a sequence anomaly is an enforced rejection here.
func judgeScan(s *ClusterState, rec *detection.Record, cfg *Config) (scanVerdict, error) {
	if rec.Judged {
		return scanSkip, nil
	}

	if rec.DetectorID == s.routeTail() {
		if cfg.AllowLongStays {
			return scanAbsorb, nil
		}
		if rec.Time.Sub(s.last.Time) <= cfg.MaxStayDuration {
			return scanAbsorb, nil
		}
		// Cannot anchor a stay that has already run too long.
		return scanSkip, nil
	}

	if s.visited(rec.DetectorID) {
		return scanSkip, nil
	}

	elapsed := rec.Time.Sub(s.last.Time).Seconds()
	minTravel, err := cfg.Registry.MinTravelTime(s.last.DetectorID, rec.DetectorID, cfg.WalkerSpeed)
	if err != nil {
		return 0, err
	}
	if cfg.seqAnomaly(s.last, rec, elapsed, minTravel) {
		return scanSkip, nil
	}
	if cfg.impossible(elapsed, minTravel) {
		return scanSkip, nil
	}
	return scanFound, nil
}

// forwardSearch scans strictly forward from start for the nearest record
// reachable from the cluster's current position. Absorbed same-place
// records mutate state as the scan goes, so later feasibility checks use
// the freshest stay time; that side effect stands even when the search as
// a whole fails.
func forwardSearch(s *ClusterState, records []*detection.Record, start int, cfg *Config) (int, bool, error) {
	for i := start; i < len(records); i++ {
		verdict, err := judgeScan(s, records[i], cfg)
		if err != nil {
			return 0, false, err
		}
		switch verdict {
		case scanSkip:
		case scanAbsorb:
			s.addRecord(records[i], false)
		case scanFound:
			slog.Debug("Reachable record found", "cluster", s.ID,
				"from", s.last.DetectorID, "to", records[i].DetectorID,
				"skipped", i-start)
			return i, true, nil
		}
	}
	slog.Debug("No reachable record, cluster ends", "cluster", s.ID)
	return 0, false, nil
}
