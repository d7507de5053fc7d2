package estimator

import (
	"sort"
	"time"

	"github.com/strollnet/paceline/types/detection"
	"github.com/strollnet/paceline/types/trajectory"
)

// aggregateStays summarizes a finished cluster's records into per-detector
// stays. Stays are ordered by each detector's earliest detection, which
// coincides with route order for simple non-revisited routes.
func aggregateStays(records []*detection.Record) []trajectory.Stay {
	byDetector := make(map[string][]*detection.Record)
	for _, r := range records {
		byDetector[r.DetectorID] = append(byDetector[r.DetectorID], r)
	}

	order := make([]string, 0, len(byDetector))
	for id := range byDetector {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		return earliest(byDetector[order[i]]).Before(earliest(byDetector[order[j]]))
	})

	stays := make([]trajectory.Stay, 0, len(order))
	for _, id := range order {
		recs := byDetector[id]
		detection.SortByTime(recs)
		first := recs[0].Time
		last := recs[len(recs)-1].Time
		stays = append(stays, trajectory.Stay{
			DetectorID:     id,
			FirstDetection: first,
			LastDetection:  last,
			DurationSecs:   last.Sub(first).Seconds(),
			NumDetections:  len(recs),
		})
	}
	return stays
}

func earliest(records []*detection.Record) (t time.Time) {
	t = records[0].Time
	for _, r := range records[1:] {
		if r.Time.Before(t) {
			t = r.Time
		}
	}
	return t
}
