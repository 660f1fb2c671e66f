package model

import (
	"math"
)

// IDM constants fixed by spec §6; only a_max and T are host-tunable (via
// SimulationConfig.MaxAccel / SafeTimeGap).
const (
	idmDelta           = 4.0 // free-term exponent
	idmJamDistance     = 2.0 // s0, meters
	idmComfortDecel    = 2.0 // b, m/s^2
	idmGapFloor        = 0.1 // meters, keeps a_int finite near/at collision
)

// idmAccel implements the Intelligent Driver Model (spec §4.2), a pure
// function of speed, leader speed, gap, desired speed, and the two
// host-tunable parameters. hasLeader=false (or gap == +Inf) returns the
// free-road term alone.
//
// https://en.wikipedia.org/wiki/Intelligent_driver_model
func idmAccel(v, v0, aMax, safeTimeGap float64, hasLeader bool, leaderV, gap float64) float64 {
	aFree := aMax * (1 - math.Pow(v/v0, idmDelta))
	if !hasLeader || math.IsInf(gap, 1) {
		return aFree
	}
	deltaV := v - leaderV
	sStar := idmJamDistance + v*safeTimeGap +
		v*deltaV/(2*math.Sqrt(aMax*idmComfortDecel))
	aInt := -aMax * math.Pow(sStar/math.Max(gap, idmGapFloor), 2)
	return aFree + aInt
}

// gapTo computes the bumper-to-bumper gap from an ego vehicle's front at
// egoX to a leader's rear (leaderX, leaderLength). Shared by the neighbor
// query callers and MOBIL's hypothetical-lane-change evaluations.
func gapTo(egoX, leaderX, leaderLength float64) float64 {
	return leaderX - leaderLength - egoX
}
