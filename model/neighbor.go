package model

import "git.fiblab.net/general/common/v2/mathutil"

// leader returns the nearest vehicle strictly ahead of self on targetLane
// (smallest strictly positive other.X - self.X), ties broken by smallest
// id, or nil if none (spec §4.1). targetLane may differ from self.Lane;
// MOBIL relies on that to probe a candidate lane.
func leader(vehicles []*Vehicle, self *Vehicle, targetLane int) *Vehicle {
	var best *Vehicle
	bestGap := mathutil.INF
	for _, other := range vehicles {
		if other == self || other.Lane != targetLane {
			continue
		}
		gap := other.X - self.X
		if gap <= 0 {
			continue
		}
		if gap < bestGap || (gap == bestGap && other.ID < best.ID) {
			best, bestGap = other, gap
		}
	}
	return best
}

// follower returns the nearest vehicle strictly behind self on targetLane
// (smallest strictly positive self.X - other.X), ties broken by smallest
// id, or nil if none (spec §4.1).
func follower(vehicles []*Vehicle, self *Vehicle, targetLane int) *Vehicle {
	var best *Vehicle
	bestGap := mathutil.INF
	for _, other := range vehicles {
		if other == self || other.Lane != targetLane {
			continue
		}
		gap := self.X - other.X
		if gap <= 0 {
			continue
		}
		if gap < bestGap || (gap == bestGap && other.ID < best.ID) {
			best, bestGap = other, gap
		}
	}
	return best
}
