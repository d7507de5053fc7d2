package estimator

import (
	"log/slog"
	"testing"

	"github.com/strollnet/paceline/common"
	"github.com/strollnet/paceline/types/detection"
)

func TestExtractClusterExhaustedGroup(t *testing.T) {
	cfg := testConfig(t)
	judged := rec("G1", "A", 0, 1)
	judged.Judged = true

	s, err := extractCluster([]*detection.Record{judged}, "c1", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Errorf("got cluster %v from fully-judged group", s.ID)
	}
}

func TestExtractClusterLeavesResidue(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn + 1)()
	cfg := testConfig(t)

	records := []*detection.Record{
		rec("G1", "A", 0, 1),
		rec("G1", "B", 50, 2),
		rec("G1", "B", 200, 3),
	}
	s, err := extractCluster(records, "c1", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil {
		t.Fatal("no cluster")
	}
	if got := s.RouteString(); got != "AB" {
		t.Errorf("route = %q, want AB", got)
	}
	if len(s.Records) != 2 {
		t.Errorf("records = %d, want 2", len(s.Records))
	}
	// One pass leaves exactly the unreachable burst behind.
	if unjudged := len(records) - detection.CountJudged(records); unjudged != 1 {
		t.Errorf("unjudged = %d, want 1", unjudged)
	}
	if records[1].Judged {
		t.Error("unreachable record claimed")
	}
}

func TestClusterStateRoute(t *testing.T) {
	s := newClusterState("c1", rec("G1", "A", 0, 1))
	s.addRecord(rec("G1", "A", 10, 2), false)
	s.addRecord(rec("G1", "B", 120, 3), true)
	s.addRecord(rec("G1", "B", 130, 4), true) // same tail, no growth

	if got := s.RouteString(); got != "AB" {
		t.Errorf("route = %q, want AB", got)
	}
	if s.routeTail() != "B" {
		t.Errorf("tail = %q, want B", s.routeTail())
	}
	if !s.visited("A") || s.visited("C") {
		t.Error("visited bookkeeping wrong")
	}
	if s.last.Seq != 4 {
		t.Errorf("last seq = %d, want 4", s.last.Seq)
	}
}
