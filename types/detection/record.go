// Package detection holds the raw sensor record type.
package detection

import (
	"sort"
	"time"
)

// SeqModulo is the cycle length of the broadcast sequence counter.
const SeqModulo = 4096

// Record is one detection event: a sensor saw one broadcast burst payload.
//
// GroupKey is the hashed payload identifier. It is ambiguous: carriers of
// the same device model can share one, so the engine must not trust it as
// an identity.
//
// WalkerID is ground truth carried by the synthetic generator for offline
// scoring. The clustering engine never reads it.
//
// Judged and ClusterID are the engine's annotations. They are written
// exactly once: a record transitions unjudged -> judged with a cluster
// assignment, and is never reconsidered by a later pass.
type Record struct {
	Time       time.Time `json:"timestamp"`
	WalkerID   string    `json:"walker_id,omitempty"`
	GroupKey   string    `json:"hashed_id"`
	DetectorID string    `json:"detector_id"`
	Seq        int       `json:"sequence_number"`

	Judged    bool   `json:"is_judged"`
	ClusterID string `json:"cluster_id,omitempty"`
}

// SeqDelta is the absolute sequence-number difference to another record.
// It is deliberately not wrap-aware; a wrap across the 4096 boundary reads
// as a large jump, which is the corroborating signal the engine wants.
func (r *Record) SeqDelta(o *Record) int {
	d := r.Seq - o.Seq
	if d < 0 {
		d = -d
	}
	return d
}

// SortByTime sorts records chronologically, in place. The sort is stable
// so same-timestamp bursts keep their emission order.
func SortByTime(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time.Before(records[j].Time)
	})
}

// CountJudged reports how many records carry a cluster assignment.
func CountJudged(records []*Record) int {
	n := 0
	for _, r := range records {
		if r.Judged {
			n++
		}
	}
	return n
}
