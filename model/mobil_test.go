package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseMobilParams() mobilParams {
	return mobilParams{aMax: 1.5, safeTimeGap: 1.5, politeness: 0.2}
}

func TestCandidateLanesOrderAndBounds(t *testing.T) {
	assert.Equal(t, []int{1}, candidateLanes(0, 3))
	assert.Equal(t, []int{0, 2}, candidateLanes(1, 3))
	assert.Equal(t, []int{1}, candidateLanes(2, 3))
}

func TestPlanLaneChangeSkippedDuringCooldown(t *testing.T) {
	subject := mkVehicle(1, 0, 100)
	subject.TargetSpeed = 30
	subject.V = 10
	subject.LaneChangeTimer = 1.0
	_, ok := planLaneChange([]*Vehicle{subject}, subject, 0, baseMobilParams(), 3)
	assert.False(t, ok)
}

func TestPlanLaneChangeSkippedWhenCrashed(t *testing.T) {
	subject := mkVehicle(1, 0, 100)
	subject.Crashed = true
	_, ok := planLaneChange([]*Vehicle{subject}, subject, 0, baseMobilParams(), 3)
	assert.False(t, ok)
}

func TestPlanLaneChangeRejectsUnsafeCandidate(t *testing.T) {
	subject := mkVehicle(1, 0, 100)
	subject.TargetSpeed, subject.V = 30, 25
	// A newFollower extremely close behind in lane 1: moving subject in
	// front of it forces a hard brake well past the -3.0 floor.
	closeFollower := mkVehicle(2, 1, 99.5)
	closeFollower.TargetSpeed, closeFollower.V = 30, 28
	vehicles := []*Vehicle{subject, closeFollower}

	_, ok := planLaneChange(vehicles, subject, 0, baseMobilParams(), 3)
	assert.False(t, ok)
}

func TestPlanLaneChangeCommitsWhenBeneficialAndSafe(t *testing.T) {
	subject := mkVehicle(1, 0, 100)
	subject.TargetSpeed, subject.V = 30, 15
	// A slow leader directly ahead in lane 0 makes staying costly...
	slowLeader := mkVehicle(2, 0, 110)
	slowLeader.TargetSpeed, slowLeader.V = 15, 10
	// ...while lane 1 is clear far ahead and far behind.
	vehicles := []*Vehicle{subject, slowLeader}

	aCur := idmAccel(subject.V, subject.TargetSpeed, 1.5, 1.5, true, slowLeader.V, gapTo(subject.X, slowLeader.X, slowLeader.Length))
	lane, ok := planLaneChange(vehicles, subject, aCur, baseMobilParams(), 3)
	assert.True(t, ok)
	assert.Equal(t, 1, lane)
}

func TestSignOf(t *testing.T) {
	assert.Equal(t, 1, signOf(2))
	assert.Equal(t, -1, signOf(-2))
	assert.Equal(t, 0, signOf(0))
}
