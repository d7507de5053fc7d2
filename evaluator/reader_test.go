package evaluator

import (
	"path/filepath"
	"testing"

	"github.com/strollnet/paceline/flat"
	"github.com/strollnet/paceline/types/trajectory"
)

func TestReadTruthsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ground_truth.json")

	want := []*trajectory.Truth{
		mkTruth("gt_traj_1", "Walker_1", "AB", 0),
		mkTruth("gt_traj_2", "Walker_2", "BA", 3600),
	}
	if err := flat.WriteTrajectories(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTruths(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d truths, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].WalkerID != want[i].WalkerID ||
			got[i].Route != want[i].Route {
			t.Errorf("truth %d: %+v", i, got[i])
		}
		if len(got[i].Stays) != len(want[i].Stays) {
			t.Fatalf("truth %d: %d stays, want %d", i, len(got[i].Stays), len(want[i].Stays))
		}
		for j := range want[i].Stays {
			g, w := got[i].Stays[j], want[i].Stays[j]
			if g.DetectorID != w.DetectorID || !g.Arrival.Equal(w.Arrival) ||
				!g.Departure.Equal(w.Departure) || g.DurationSecs != w.DurationSecs {
				t.Errorf("truth %d stay %d: %+v, want %+v", i, j, g, w)
			}
		}
	}
}

func TestReadEstimatesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "estimated_trajectories.json")

	est := mkEstimate("est_traj_1", "AB", 0, 15)
	est.ClusterIDs = []string{"B_common_hash_X_cluster1"}
	if err := flat.WriteTrajectories(path, []*trajectory.Trajectory{est}); err != nil {
		t.Fatal(err)
	}

	got, err := ReadEstimates(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("read %d estimates, want 1", len(got))
	}
	g := got[0]
	if g.ID != est.ID || g.Route != est.Route {
		t.Errorf("got %+v", g)
	}
	if len(g.ClusterIDs) != 1 || g.ClusterIDs[0] != est.ClusterIDs[0] {
		t.Errorf("cluster ids: %v", g.ClusterIDs)
	}
	for i := range est.Stays {
		if !g.Stays[i].FirstDetection.Equal(est.Stays[i].FirstDetection) ||
			g.Stays[i].NumDetections != est.Stays[i].NumDetections {
			t.Errorf("stay %d: %+v", i, g.Stays[i])
		}
	}
}

func TestReadTruthsMissingFile(t *testing.T) {
	if _, err := ReadTruths(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file read without error")
	}
}
