package detector

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/strollnet/paceline/params"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		Detector{ID: "A", Point: orb.Point{-10000, 10000}},
		Detector{ID: "B", Point: orb.Point{10000, 10000}},
		Detector{ID: "C", Point: orb.Point{10000, -10000}},
		Detector{ID: "D", Point: orb.Point{-10000, -10000}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewRegistry(t *testing.T) {
	if _, err := NewRegistry(); !errors.Is(err, ErrEmptyRegistry) {
		t.Errorf("empty registry: got %v, want ErrEmptyRegistry", err)
	}
	_, err := NewRegistry(
		Detector{ID: "A", Point: orb.Point{0, 0}},
		Detector{ID: "A", Point: orb.Point{1, 1}},
	)
	if err == nil {
		t.Error("duplicate id accepted")
	}
}

func TestRegistryGet(t *testing.T) {
	r := testRegistry(t)
	d, err := r.Get("B")
	if err != nil {
		t.Fatal(err)
	}
	if d.Point.X() != 10000 || d.Point.Y() != 10000 {
		t.Errorf("got %v", d.Point)
	}
	if _, err := r.Get("Z"); !errors.Is(err, ErrUnknownDetector) {
		t.Errorf("got %v, want ErrUnknownDetector", err)
	}
	if r.Has("Z") {
		t.Error("Has(Z) = true")
	}
}

func TestRegistryIDs(t *testing.T) {
	r := testRegistry(t)
	ids := r.IDs()
	want := []string{"A", "B", "C", "D"}
	if len(ids) != len(want) {
		t.Fatalf("got %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestDistance(t *testing.T) {
	r := testRegistry(t)

	cases := []struct {
		a, b string
		want float64
	}{
		{"A", "B", 20000},
		{"B", "C", 20000},
		{"A", "C", 20000 * math.Sqrt2},
		{"A", "A", 0},
	}
	for _, c := range cases {
		got, err := r.Distance(c.a, c.b)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("Distance(%s,%s) = %v, want %v", c.a, c.b, got, c.want)
		}
		// Symmetric, and the second lookup hits the cache.
		rev, err := r.Distance(c.b, c.a)
		if err != nil {
			t.Fatal(err)
		}
		if rev != got {
			t.Errorf("Distance(%s,%s) = %v, reversed %v", c.a, c.b, got, rev)
		}
	}

	if _, err := r.Distance("A", "Z"); !errors.Is(err, ErrUnknownDetector) {
		t.Errorf("got %v, want ErrUnknownDetector", err)
	}
}

func TestMinTravelTime(t *testing.T) {
	r := testRegistry(t)

	got, err := r.MinTravelTime("A", "B", 1.4)
	if err != nil {
		t.Fatal(err)
	}
	want := 20000.0 / 1.4
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := r.MinTravelTime("A", "B", 0); err == nil {
		t.Error("zero speed accepted")
	}
}

func TestFromSpecs(t *testing.T) {
	r, err := FromSpecs(params.DefaultDetectorSpecs)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 4 {
		t.Errorf("Len = %d, want 4", r.Len())
	}
}
