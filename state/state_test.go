package state

import (
	"testing"
)

type fakeResult struct {
	Walkers int     `json:"num_walkers"`
	MAE     float64 `json:"mae"`
}

func TestRunRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	want := fakeResult{Walkers: 10, MAE: 0.5}
	if err := s.PutRun("exp1", 10, 1, want); err != nil {
		t.Fatal(err)
	}

	var got fakeResult
	ok, err := s.GetRun("exp1", 10, 1, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("stored run not found")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	ok, err = s.GetRun("exp1", 10, 2, &got)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("absent run reported present")
	}
}

func TestEachRun(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for _, cell := range []struct{ walkers, run int }{{5, 2}, {5, 1}, {10, 1}} {
		if err := s.PutRun("exp1", cell.walkers, cell.run, fakeResult{Walkers: cell.walkers}); err != nil {
			t.Fatal(err)
		}
	}
	// A different experiment must not leak into the scan.
	if err := s.PutRun("exp2", 5, 1, fakeResult{}); err != nil {
		t.Fatal(err)
	}

	var keys []string
	err = s.EachRun("exp1", func(key string, data []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"exp1/w005/r001", "exp1/w005/r002", "exp1/w010/r001"}
	if len(keys) != len(want) {
		t.Fatalf("keys: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.PutRun("exp1", 5, 1, fakeResult{Walkers: 5}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	var got fakeResult
	ok, err := s.GetRun("exp1", 5, 1, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got.Walkers != 5 {
		t.Errorf("ok = %v got = %+v", ok, got)
	}
}
