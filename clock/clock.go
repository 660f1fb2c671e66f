// Package clock tracks simulated time for the traffic core.
package clock

import "fmt"

// BaseDT is the fixed integration interval (spec §4.4), 60 Hz.
const BaseDT = 1.0 / 60.0

// Clock advances simulated time by one integration interval per Tick.
// The effective step is BaseDT scaled by the host's timeScale option.
type Clock struct {
	T       float64 // elapsed simulated time, seconds
	NumTick int64   // number of Tick calls since the last Reset
}

// New creates a clock at t=0.
func New() *Clock {
	return &Clock{}
}

// Tick advances the clock by BaseDT*timeScale and returns that effective dt.
func (c *Clock) Tick(timeScale float64) float64 {
	dt := BaseDT * timeScale
	c.T += dt
	c.NumTick++
	return dt
}

// Reset zeroes the clock.
func (c *Clock) Reset() {
	c.T = 0
	c.NumTick = 0
}

// String formats elapsed time as HH:MM:SS.
func (c *Clock) String() string {
	t := c.T
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
