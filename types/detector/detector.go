// Package detector holds the fixed-sensor registry.
// Detectors are immutable once loaded; all clustering arithmetic rests on
// the planar distance between their coordinates.
package detector

import (
	"errors"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/strollnet/paceline/params"
)

var ErrUnknownDetector = errors.New("unknown detector")
var ErrEmptyRegistry = errors.New("empty detector registry")

// Detector is a fixed sensor with a known position.
type Detector struct {
	ID    string
	Point orb.Point
}

// Registry maps detector IDs to positions and memoizes pairwise distances.
type Registry struct {
	detectors map[string]Detector
	distances *lru.Cache[[2]string, float64]
}

const distanceCacheSize = 4096

func NewRegistry(detectors ...Detector) (*Registry, error) {
	if len(detectors) == 0 {
		return nil, ErrEmptyRegistry
	}
	m := make(map[string]Detector, len(detectors))
	for _, d := range detectors {
		if d.ID == "" {
			return nil, errors.New("detector with empty id")
		}
		if _, ok := m[d.ID]; ok {
			return nil, fmt.Errorf("duplicate detector id %q", d.ID)
		}
		m[d.ID] = d
	}
	cache, err := lru.New[[2]string, float64](distanceCacheSize)
	if err != nil {
		return nil, err
	}
	return &Registry{detectors: m, distances: cache}, nil
}

// FromSpecs builds a registry from configuration.
func FromSpecs(specs []params.DetectorSpec) (*Registry, error) {
	detectors := make([]Detector, 0, len(specs))
	for _, s := range specs {
		detectors = append(detectors, Detector{ID: s.ID, Point: orb.Point{s.X, s.Y}})
	}
	return NewRegistry(detectors...)
}

func (r *Registry) Get(id string) (Detector, error) {
	d, ok := r.detectors[id]
	if !ok {
		return Detector{}, fmt.Errorf("%w: %q", ErrUnknownDetector, id)
	}
	return d, nil
}

func (r *Registry) Has(id string) bool {
	_, ok := r.detectors[id]
	return ok
}

func (r *Registry) Len() int {
	return len(r.detectors)
}

// IDs returns all detector IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.detectors))
	for id := range r.detectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Distance is the planar euclidean distance between two detectors, meters.
func (r *Registry) Distance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}
	key := [2]string{a, b}
	if a > b {
		key = [2]string{b, a}
	}
	if d, ok := r.distances.Get(key); ok {
		return d, nil
	}
	da, err := r.Get(a)
	if err != nil {
		return 0, err
	}
	db, err := r.Get(b)
	if err != nil {
		return 0, err
	}
	d := planar.Distance(da.Point, db.Point)
	r.distances.Add(key, d)
	return d, nil
}

// MinTravelTime is the fastest possible transit between two detectors in
// seconds, for a carrier moving at speed meters per second.
func (r *Registry) MinTravelTime(a, b string, speed float64) (float64, error) {
	if speed <= 0 {
		return 0, fmt.Errorf("non-positive speed %v", speed)
	}
	d, err := r.Distance(a, b)
	if err != nil {
		return 0, err
	}
	return d / speed, nil
}
