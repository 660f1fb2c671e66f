package model

import "math"

// lateralInterpSpeed is the visual lane-change interpolation rate, in
// lane-units per second (spec §6).
const lateralInterpSpeed = 2.5

// snapThreshold is how close y must get to lane before it snaps and the
// indicator resets (spec §4.4: "|y - lane| > 0.05").
const snapThreshold = 0.05

// integrate is phase 3 of Step (spec §4.4): semi-implicit Euler update of
// speed and longitudinal position, plus lateral (visual) interpolation and
// the countdown of the lane-change cooldown.
// Iteration order is irrelevant once every vehicle's A is fixed by decide.
func integrate(vehicles []*Vehicle, dt float64) {
	for _, v := range vehicles {
		if v.Crashed {
			// Crashed vehicles bypass velocity/position updates and
			// retain v=0, a=0 (spec §4.4).
			v.V = 0
			v.A = 0
			continue
		}
		v.V = math.Max(0, v.V+v.A*dt)
		v.X += v.V * dt
		v.LaneChangeTimer = math.Max(0, v.LaneChangeTimer-dt)

		integrateLateral(v, dt)
	}
}

// integrateLateral advances y toward lane at lateralInterpSpeed, or snaps
// to lane and clears the indicator once close enough (spec §4.4).
func integrateLateral(v *Vehicle, dt float64) {
	target := float64(v.Lane)
	if math.Abs(v.Y-target) > snapThreshold {
		step := lateralInterpSpeed * dt
		if v.Y < target {
			v.Y = math.Min(target, v.Y+step)
		} else {
			v.Y = math.Max(target, v.Y-step)
		}
	} else {
		v.Y = target
		v.LaneChangeDirection = 0
	}
}

// removeBeyondBoundary drops every vehicle with x > roadLength (spec §4.4:
// "if x > roadLength, remove the vehicle"), preserving the relative order
// of the survivors.
func removeBeyondBoundary(vehicles []*Vehicle, roadLength float64) []*Vehicle {
	out := vehicles[:0]
	for _, v := range vehicles {
		if v.X > roadLength {
			continue
		}
		out = append(out, v)
	}
	return out
}
