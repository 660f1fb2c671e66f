// Package model implements the microscopic traffic simulation core: a
// discrete-time IDM+MOBIL engine advancing a population of vehicles along a
// multi-lane unidirectional road segment (spec §2-§6).
package model

import (
	"sort"

	"github.com/trafficlab/microsim/clock"
	"github.com/trafficlab/microsim/config"
	"github.com/trafficlab/microsim/container"
	"github.com/trafficlab/microsim/randengine"
)

// LaneCount is L in spec §3/§6: fixed at 3, runtime change not supported.
const LaneCount = 3

// FDSamplingInterval is the approximate simulated-time period between
// fundamental-diagram samples (spec §4.7, §6).
const FDSamplingInterval = 1.0

// FDRingCapacity bounds the fundamental-diagram history (spec §3, §6).
const FDRingCapacity = 200

// FDPoint is one (density, flow) sample of the fundamental diagram.
type FDPoint struct {
	K float64 // density, veh/km
	Q float64 // flow, veh/h
}

// Model is the singleton simulation state (spec §3): the ordered vehicle
// list, road geometry, spawner bookkeeping, the fundamental-diagram ring,
// and the current incident. It is owned exclusively by the simulation and
// must not be mutated by the host outside of Step/Reset/TriggerAccident
// (spec §5).
type Model struct {
	RoadLength float64
	laneCount  int

	vehicles []*Vehicle
	nextID   int64

	timeSinceLastSpawn float64
	statsTimer         float64

	fdRing     *container.Ring[FDPoint]
	lastSample *FDPoint

	incident  *incident
	restoreCh chan int64

	clock *clock.Clock
	rng   *randengine.Engine
}

// NewModel constructs an empty model for a road of the given length, with
// lane count defaulted to LaneCount (spec §6: "constructs an empty model;
// defaults L=3"). rng centralizes every stochastic draw (spec §5); pass a
// deterministically-seeded randengine.Engine for reproducible runs.
func NewModel(roadLength float64, rng *randengine.Engine) *Model {
	m := &Model{
		RoadLength: roadLength,
		laneCount:  LaneCount,
		clock:      clock.New(),
		rng:        rng,
		fdRing:     container.NewRing[FDPoint](FDRingCapacity),
		restoreCh:  make(chan int64, 8),
	}
	m.nextID = 1
	return m
}

// Reset clears vehicles, the FD ring, and any incident; resets nextId=1 and
// timeSinceLastSpawn=0 (spec §6).
func (m *Model) Reset() {
	m.vehicles = nil
	m.nextID = 1
	m.timeSinceLastSpawn = 0
	m.statsTimer = 0
	m.fdRing.Clear()
	m.lastSample = nil
	m.incident = nil
	m.clock.Reset()
	// Drain any in-flight incident-restoration signals so a stale timer
	// from before the reset can't resurrect a vehicle that no longer
	// exists.
	for {
		select {
		case <-m.restoreCh:
		default:
			return
		}
	}
}

// Step advances simulation time by one integration interval (spec §2),
// running the five sub-phases in order: sort, decide, integrate, boundary,
// aggregate. It is atomic from the host's perspective: all mutation of the
// model's owned state happens inside this call.
func (m *Model) Step(cfg config.SimulationConfig) {
	m.drainIncidentRestorations()

	// Phase 1: sort by x descending (spec §2, §3 invariant).
	sort.SliceStable(m.vehicles, func(i, j int) bool {
		return m.vehicles[i].X > m.vehicles[j].X
	})

	// Phase 2: decide (IDM acceleration + staged MOBIL lane changes).
	commits := decide(m.vehicles, m.laneCount, cfg, m.rng)
	commitLaneChanges(commits)

	// Phase 3: integrate (semi-implicit Euler + lateral interpolation).
	dt := m.clock.Tick(cfg.TimeScale)
	integrate(m.vehicles, dt)

	// Phase 4: boundary (despawn past roadLength, attempt inflow spawn).
	m.vehicles = removeBeyondBoundary(m.vehicles, m.RoadLength)
	m.trySpawn(cfg, dt)

	// Phase 5: aggregate (FD history at ~1Hz simulated time).
	m.lastSample = nil
	m.statsTimer += dt
	if m.statsTimer >= FDSamplingInterval {
		m.statsTimer = 0
		if len(m.vehicles) > 0 {
			snap := m.Stats()
			point := FDPoint{K: snap.Density, Q: snap.Flow}
			m.fdRing.Push(point)
			m.lastSample = &point
		}
	}
}

// LastSample returns the FD point appended by the most recent Step call,
// if phase 5's ~1Hz sampling fired on that call. Hosts that mirror the FD
// history to external storage (e.g. persistence.HistorySink) should poll
// this once per Step rather than diffing Stats().Points, since the ring
// evicts its oldest entry once full and a length comparison alone would
// silently stop detecting new samples once 200 samples have been stored.
func (m *Model) LastSample() (FDPoint, bool) {
	if m.lastSample == nil {
		return FDPoint{}, false
	}
	return *m.lastSample, true
}

// Vehicles returns a read-only view of every vehicle (spec §6), safe for a
// host to iterate for rendering between Step calls.
func (m *Model) Vehicles() []VehicleView {
	out := make([]VehicleView, len(m.vehicles))
	for i, v := range m.vehicles {
		out[i] = newVehicleView(v)
	}
	return out
}

// Count returns the number of vehicles currently on the road.
func (m *Model) Count() int {
	return len(m.vehicles)
}
