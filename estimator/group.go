package estimator

import (
	"strings"

	"github.com/strollnet/paceline/types/detection"
)

// IntegrateFunc maps a raw payload hash to the group key used for
// clustering. Device models that rotate between a handful of payloads
// produce several hashes for one underlying model; folding them into one
// key keeps one carrier's records in one group.
type IntegrateFunc func(groupKey string) string

// IntegrateModelFamilies folds a model's base and sub payload hashes into
// a shared key: "C_01_base_hash" and "C_01_sub_hash" both become
// "C_01_integrated". Hashes without a base/sub marker pass through.
func IntegrateModelFamilies(key string) string {
	for _, marker := range []string{"_base_", "_sub_"} {
		if i := strings.Index(key, marker); i >= 0 {
			return key[:i] + "_integrated"
		}
	}
	return key
}

// IntegrateIdentity performs no folding.
func IntegrateIdentity(key string) string { return key }

// GroupRecords partitions records by integrated group key and time-sorts
// each group. Pure partitioning; no feasibility reasoning happens here.
func GroupRecords(records []*detection.Record, integrate IntegrateFunc) map[string][]*detection.Record {
	if integrate == nil {
		integrate = IntegrateIdentity
	}
	groups := make(map[string][]*detection.Record)
	for _, r := range records {
		key := integrate(r.GroupKey)
		groups[key] = append(groups[key], r)
	}
	for _, recs := range groups {
		detection.SortByTime(recs)
	}
	return groups
}
