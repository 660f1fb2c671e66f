package model

import (
	"math"

	"github.com/trafficlab/microsim/config"
)

// spawnClearance is the minimum gap to the nearest vehicle in the chosen
// lane required to commit a spawn (spec §4.5, §6).
const spawnClearance = 40.0

// Truck/car geometry and desired-speed sampling ranges (spec §4.5). Speeds
// are sampled in km/h then converted to m/s.
const (
	truckLength, truckWidth = 14.0, 2.6
	carLength, carWidth     = 4.5, 2.0

	truckSpeedMinKmh, truckSpeedMaxKmh = 80.0, 90.0
	carSpeedMinKmh, carSpeedMaxKmh     = 100.0, 120.0

	spawnInitialSpeedFactor = 0.9
	kmhToMs                 = 1.0 / 3.6
)

// trySpawn is phase 4's inflow half (spec §4.5). Q is inflowRate in veh/h;
// mean headway tau = 3600/Q seconds. timeSinceLastSpawn always accumulates
// by dt; it is only reset to zero on a successful spawn, never on an
// aborted attempt (spec §9: "this spec explicitly says do not reset on
// failed attempts").
func (m *Model) trySpawn(cfg config.SimulationConfig, dt float64) {
	m.timeSinceLastSpawn += dt

	if cfg.InflowRate <= 0 {
		return
	}
	tau := 3600.0 / cfg.InflowRate
	u := m.rng.Uniform(0.8, 1.2)
	if m.timeSinceLastSpawn <= u*tau {
		return
	}

	lane, clearance := m.emptiestLane()
	if clearance <= spawnClearance {
		return // abort without resetting the timer; retry next step
	}

	m.vehicles = append(m.vehicles, m.spawnVehicle(lane, cfg))
	m.timeSinceLastSpawn = 0
}

// emptiestLane returns the lane with the largest minimum x over its
// vehicles (spec §4.5 step 1-2); an empty lane's minimum is treated as
// +Inf, so an empty lane always wins.
func (m *Model) emptiestLane() (lane int, minX float64) {
	mins := make([]float64, m.laneCount)
	for i := range mins {
		mins[i] = math.Inf(1)
	}
	for _, v := range m.vehicles {
		if v.X < mins[v.Lane] {
			mins[v.Lane] = v.X
		}
	}
	best := 0
	for i := 1; i < m.laneCount; i++ {
		if mins[i] > mins[best] {
			best = i
		}
	}
	return best, mins[best]
}

// spawnVehicle samples type, desired speed, and geometry, and constructs a
// new vehicle entering at x=0 on lane (spec §4.5 step 4).
func (m *Model) spawnVehicle(lane int, cfg config.SimulationConfig) *Vehicle {
	id := m.nextID
	m.nextID++

	v := &Vehicle{
		ID:   id,
		Lane: lane,
		Y:    float64(lane),
	}

	if m.rng.Bernoulli(cfg.TruckRatio) {
		v.Type = Truck
		v.Length, v.Width = truckLength, truckWidth
		v.TargetSpeed = m.rng.Uniform(truckSpeedMinKmh, truckSpeedMaxKmh) * kmhToMs
	} else {
		v.Type = Car
		v.Length, v.Width = carLength, carWidth
		v.TargetSpeed = m.rng.Uniform(carSpeedMinKmh, carSpeedMaxKmh) * kmhToMs
	}
	v.V = spawnInitialSpeedFactor * v.TargetSpeed
	return v
}
