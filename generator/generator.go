// Package generator synthesizes walkers, their ground-truth trajectories,
// and the detection records a sensor network would log as they pass.
// The records are the estimator's input; the trajectories exist only for
// offline accuracy scoring.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/strollnet/paceline/params"
	"github.com/strollnet/paceline/types/detection"
	"github.com/strollnet/paceline/types/detector"
	"github.com/strollnet/paceline/types/trajectory"
)

type Generator struct {
	cfg      params.SimulationConfig
	registry *detector.Registry
	models   []Model
	rng      *rand.Rand
}

// New builds a seeded generator. A nil models slice gets DefaultModels.
func New(registry *detector.Registry, cfg params.SimulationConfig, models []Model) (*Generator, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, detector.ErrEmptyRegistry
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if models == nil {
		models = DefaultModels()
	}
	return &Generator{
		cfg:      cfg,
		registry: registry,
		models:   models,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Simulate produces the ground-truth trajectories and the time-sorted
// detection records for the configured crowd.
func (g *Generator) Simulate() ([]*trajectory.Truth, []*detection.Record, error) {
	walkers := g.generateWalkers()

	truths := make([]*trajectory.Truth, 0, len(walkers))
	var records []*detection.Record

	for i, w := range walkers {
		stays, err := g.generateStays(w.Route, g.cfg.StartTime)
		if err != nil {
			return nil, nil, err
		}
		truths = append(truths, &trajectory.Truth{
			ID:       fmt.Sprintf("gt_traj_%d", i+1),
			WalkerID: w.ID,
			Route:    w.Route,
			Stays:    stays,
		})
		records = append(records, g.generateRecords(w, stays)...)
	}

	detection.SortByTime(records)
	return truths, records, nil
}

func (g *Generator) generateWalkers() []Walker {
	walkers := make([]Walker, 0, g.cfg.NumWalkers)
	for i := 0; i < g.cfg.NumWalkers; i++ {
		walkers = append(walkers, Walker{
			ID:    fmt.Sprintf("Walker_%d", i+1),
			Model: g.chooseModel().Name,
			Route: g.randomRoute(),
		})
	}
	return walkers
}

func (g *Generator) chooseModel() Model {
	roll := g.rng.Float64()
	acc := 0.0
	for _, m := range g.models {
		acc += m.Probability
		if roll < acc {
			return m
		}
	}
	return g.models[len(g.models)-1]
}

// randomRoute is a no-repeat visit order over every detector.
func (g *Generator) randomRoute() string {
	ids := g.registry.IDs()
	g.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	route := ""
	for _, id := range ids {
		route += id
	}
	return route
}

// generateStays walks the route, dwelling a uniform random interval at
// each detector and spending distance/speed plus-or-minus variation on
// each leg between them.
func (g *Generator) generateStays(route string, start time.Time) ([]trajectory.TruthStay, error) {
	current := start
	stays := make([]trajectory.TruthStay, 0, len(route))
	ids := routeIDs(route)
	for i, id := range ids {
		dwell := g.uniformDuration(g.cfg.StayDurationMin, g.cfg.StayDurationMax)
		departure := current.Add(dwell)
		stays = append(stays, trajectory.TruthStay{
			DetectorID:   id,
			Arrival:      current,
			Departure:    departure,
			DurationSecs: dwell.Seconds(),
		})
		if i < len(ids)-1 {
			travel, err := g.travelTime(id, ids[i+1])
			if err != nil {
				return nil, err
			}
			current = departure.Add(travel)
		}
	}
	return stays, nil
}

func (g *Generator) travelTime(from, to string) (time.Duration, error) {
	dist, err := g.registry.Distance(from, to)
	if err != nil {
		return 0, err
	}
	base := dist / g.cfg.WalkerSpeed
	variation := base * g.cfg.VariationFactor * (g.rng.Float64()*2 - 1)
	secs := base + variation
	if secs < 0 {
		secs = 0
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// generateRecords emits each stay's payloads as bursts: chunks of 1 to 4
// consecutive sequence numbers at millisecond spacing, each chunk placed
// at a random offset inside the stay. A fresh random sequence start per
// chunk is what makes cross-chunk sequence deltas jump.
func (g *Generator) generateRecords(w Walker, stays []trajectory.TruthStay) []*detection.Record {
	model := g.modelByName(w.Model)
	var records []*detection.Record

	for _, stay := range stays {
		var stayRecords []*detection.Record
		remaining := g.cfg.PayloadsPerDetector
		for remaining > 0 {
			size := 1 + g.rng.Intn(4)
			if size > remaining {
				size = remaining
			}
			maxOffset := stay.DurationSecs - float64(size)*0.001
			if maxOffset < 0 {
				maxOffset = 0
			}
			offset := g.rng.Float64() * maxOffset
			startSeq := g.rng.Intn(detection.SeqModulo)

			for i := 0; i < size; i++ {
				at := stay.Arrival.
					Add(time.Duration(offset * float64(time.Second))).
					Add(time.Duration(i) * time.Millisecond)
				stayRecords = append(stayRecords, &detection.Record{
					Time:       at,
					WalkerID:   w.ID,
					GroupKey:   g.choosePayload(w, model),
					DetectorID: stay.DetectorID,
					Seq:        (startSeq + i) % detection.SeqModulo,
				})
			}
			remaining -= size
		}
		detection.SortByTime(stayRecords)
		records = append(records, stayRecords...)
	}
	return records
}

func (g *Generator) choosePayload(w Walker, m Model) string {
	if m.Unique {
		return "unique_and_hashed_payload_" + w.ID
	}
	// Deterministic iteration keeps runs reproducible for one seed.
	hashes := make([]string, 0, len(m.Payloads))
	for h := range m.Payloads {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	roll := g.rng.Float64()
	acc := 0.0
	for _, h := range hashes {
		acc += m.Payloads[h]
		if roll < acc {
			return h
		}
	}
	return hashes[len(hashes)-1]
}

func (g *Generator) modelByName(name string) Model {
	for _, m := range g.models {
		if m.Name == name {
			return m
		}
	}
	return g.models[0]
}

func (g *Generator) uniformDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(g.rng.Int63n(int64(max-min)))
}

func routeIDs(route string) []string {
	ids := make([]string, 0, len(route))
	for _, r := range route {
		ids = append(ids, string(r))
	}
	return ids
}
