package model

import (
	"github.com/montanaflynn/stats"
)

// Snapshot is the non-mutating view getStats() returns (spec §4.7): count,
// mean speed (km/h), density (veh/km), flow (veh/h), and a copy of the FD
// history ring. SpeedP15/SpeedStdDev and OccupancyByLane are ambient
// enrichments (SPEC_FULL §11) that reuse the same per-vehicle pass.
type Snapshot struct {
	Count    int
	AvgSpeed float64 // km/h, 0 when empty
	Density  float64 // veh/km, 0 when empty
	Flow     float64 // veh/h, 0 when empty

	SpeedStdDev float64 // km/h, 0 when count < 2
	SpeedP15    float64 // km/h, 0 when empty

	OccupancyByLane [LaneCount]float64 // fraction of vehicles per lane

	Points []FDPoint
}

// Stats computes the current macroscopic snapshot (spec §4.7). Returned
// slices are copies; callers may never alias the model's internal ring or
// vehicle slice (spec §5).
func (m *Model) Stats() Snapshot {
	snap := Snapshot{
		Count:  len(m.vehicles),
		Points: m.fdRing.Snapshot(),
	}
	if snap.Count == 0 {
		return snap
	}

	speeds := make(stats.Float64Data, snap.Count)
	for i, v := range m.vehicles {
		speeds[i] = v.V * 3.6
		snap.OccupancyByLane[v.Lane]++
	}
	for i := range snap.OccupancyByLane {
		snap.OccupancyByLane[i] /= float64(snap.Count)
	}

	mean, _ := speeds.Mean()
	snap.AvgSpeed = mean

	if snap.Count >= 2 {
		stddev, _ := speeds.StandardDeviation()
		snap.SpeedStdDev = stddev
	}
	p15, _ := speeds.Percentile(15)
	snap.SpeedP15 = p15

	roadLengthKm := m.RoadLength / 1000.0
	snap.Density = float64(snap.Count) / roadLengthKm
	snap.Flow = snap.Density * snap.AvgSpeed
	return snap
}
