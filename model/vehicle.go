package model

import "fmt"

// VehicleType is the categorical type from spec §3.
type VehicleType int

const (
	Car VehicleType = iota
	Truck
)

func (t VehicleType) String() string {
	switch t {
	case Car:
		return "CAR"
	case Truck:
		return "TRUCK"
	default:
		return "UNKNOWN"
	}
}

// Vehicle is the per-agent mutable state owned by the model's vehicle
// collection (spec §3). Fields are only ever mutated from inside Step,
// TriggerAccident or ClearIncident; hosts must treat VehicleView (see
// Model.Vehicles) as the read-only boundary.
type Vehicle struct {
	ID int64

	X float64 // longitudinal position, meters, >= 0
	Y float64 // continuous lateral coordinate, lane-units, visual only
	// Lane is the target lane index in [0, L-1]; physics uses this, Y is
	// only ever used for lateral visual interpolation.
	Lane int

	V float64 // speed, m/s, >= 0
	A float64 // current acceleration, m/s^2

	Length float64
	Width  float64
	Type   VehicleType

	TargetSpeed float64 // desired free-flow speed, m/s

	LaneChangeTimer     float64 // cooldown seconds, counted down by integrate; MOBIL skipped while > 0
	LaneChangeDirection int     // -1, 0, +1: indicator state (visual)

	Crashed bool
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle#%d{x=%.1f lane=%d v=%.1f type=%v}", v.ID, v.X, v.Lane, v.V, v.Type)
}

// VehicleView is the read-only snapshot a host renders from (spec §6):
// "Read-only view of vehicles (id, x, y, lane, v, a, length, width, type,
// laneChangeDirection, crashed)". It is a value type so a host can never
// alias the model's internal buffers by holding on to it.
type VehicleView struct {
	ID                  int64
	X, Y                float64
	Lane                int
	V, A                float64
	Length, Width       float64
	Type                VehicleType
	LaneChangeDirection int
	Crashed             bool
}

func newVehicleView(v *Vehicle) VehicleView {
	return VehicleView{
		ID:                  v.ID,
		X:                   v.X,
		Y:                   v.Y,
		Lane:                v.Lane,
		V:                   v.V,
		A:                   v.A,
		Length:              v.Length,
		Width:               v.Width,
		Type:                v.Type,
		LaneChangeDirection: v.LaneChangeDirection,
		Crashed:             v.Crashed,
	}
}
