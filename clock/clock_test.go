package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trafficlab/microsim/clock"
)

func TestTickAccumulates(t *testing.T) {
	c := clock.New()
	dt := c.Tick(1.0)
	assert.InDelta(t, clock.BaseDT, dt, 1e-12)
	assert.InDelta(t, clock.BaseDT, c.T, 1e-12)
	c.Tick(2.0)
	assert.InDelta(t, clock.BaseDT*3, c.T, 1e-12)
	assert.EqualValues(t, 2, c.NumTick)
}

func TestReset(t *testing.T) {
	c := clock.New()
	c.Tick(1.0)
	c.Reset()
	assert.Zero(t, c.T)
	assert.Zero(t, c.NumTick)
}

func TestString(t *testing.T) {
	c := clock.New()
	c.T = 3725 // 1h 2m 5s
	assert.Equal(t, "01:02:05", c.String())
}
