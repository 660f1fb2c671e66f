package model

import (
	"github.com/trafficlab/microsim/config"
	"github.com/trafficlab/microsim/randengine"
)

// laneChangeCommit is a staged decision from the decide phase, applied in a
// second pass so concurrent MOBIL evaluations within the same step never
// see each other's updated lanes (spec §9: "Stage lane-change decisions
// during the decide phase and commit in a second pass").
type laneChangeCommit struct {
	vehicle *Vehicle
	newLane int
}

// decide is phase 2 of Step (spec §2): for every non-crashed vehicle,
// compute its current-lane IDM acceleration, evaluate MOBIL, and add
// acceleration noise. It returns the staged lane changes to commit.
func decide(vehicles []*Vehicle, laneCount int, cfg config.SimulationConfig, rng *randengine.Engine) []laneChangeCommit {
	var commits []laneChangeCommit
	for _, v := range vehicles {
		if v.Crashed {
			v.A = 0
			v.V = 0
			continue
		}
		if v.TargetSpeed <= 0 {
			log.Panicf("decide: vehicle %v has non-positive targetSpeed %v, spawner invariant violated", v.ID, v.TargetSpeed)
		}

		ld := leader(vehicles, v, v.Lane)
		hasLeader := ld != nil
		var leaderV, gap float64
		if hasLeader {
			leaderV = ld.V
			gap = gapTo(v.X, ld.X, ld.Length)
		}
		aCur := idmAccel(v.V, v.TargetSpeed, cfg.MaxAccel, cfg.SafeTimeGap, hasLeader, leaderV, gap)

		params := mobilParams{aMax: cfg.MaxAccel, safeTimeGap: cfg.SafeTimeGap, politeness: cfg.Politeness}
		if newLane, ok := planLaneChange(vehicles, v, aCur, params, laneCount); ok {
			commits = append(commits, laneChangeCommit{vehicle: v, newLane: newLane})
		}

		v.A = applyNoise(aCur, v.V, cfg.AccelerationNoise, rng)
		log.Debugf("vehicle: %v a=%.3f", v, v.A)
	}
	return commits
}

// applyNoise adds a uniform([-eta/2, eta/2]) variate to a, but only when
// v > 1 m/s and eta > 0 (spec §4.2).
func applyNoise(a, v, eta float64, rng *randengine.Engine) float64 {
	if v > 1 && eta > 0 {
		return a + rng.Uniform(-eta/2, eta/2)
	}
	return a
}

// commitLaneChanges applies staged lane changes from decide: sets the new
// lane, starts the cooldown, and sets the indicator direction from the
// vehicle's current lateral position (spec §4.3).
func commitLaneChanges(commits []laneChangeCommit) {
	for _, c := range commits {
		v := c.vehicle
		v.Lane = c.newLane
		v.LaneChangeTimer = mobilCooldown
		v.LaneChangeDirection = signOf(float64(c.newLane) - v.Y)
	}
}
