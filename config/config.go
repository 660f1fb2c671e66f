// Package config defines the host-tunable SimulationConfig (spec §6) and
// its YAML file representation for the CLI entrypoint, in the teacher's
// utils/config split between the wire/file format and the runtime object.
package config

import (
	"fmt"

	"github.com/samber/lo"
)

// SimulationConfig is every option the host may set (spec §6). Field
// comments carry the ranges from the spec's table; Validate enforces only
// the looser sanity bounds listed in its checks.
type SimulationConfig struct {
	InflowRate        float64 `yaml:"inflow_rate"`        // 500-3000 veh/h
	TimeScale         float64 `yaml:"time_scale"`         // 0.1-5.0
	TruckRatio        float64 `yaml:"truck_ratio"`        // 0.0-0.4
	IsPaused          bool    `yaml:"is_paused"`          // host-side gate
	Politeness        float64 `yaml:"politeness"`         // 0.0-1.0, MOBIL p
	SafeTimeGap       float64 `yaml:"safe_time_gap"`      // 0.5-3.0s, IDM T
	MaxAccel          float64 `yaml:"max_accel"`          // m/s^2, IDM a_max
	AccelerationNoise float64 `yaml:"acceleration_noise"` // 0.0-1.0
}

// Default returns the baseline configuration: the free-flow settings of
// spec §8 scenario 1, except that TruckRatio is 0.1 instead of 0.
func Default() SimulationConfig {
	return SimulationConfig{
		InflowRate:        1000,
		TimeScale:         1.0,
		TruckRatio:        0.1,
		Politeness:        0.2,
		SafeTimeGap:       1.5,
		MaxAccel:          1.5,
		AccelerationNoise: 0,
	}
}

// Validate enforces sanity bounds on the options: inflow_rate >= 0,
// time_scale in (0, 5], truck_ratio and politeness in [0, 1], safe_time_gap
// and max_accel > 0, acceleration_noise >= 0. These are wider than the
// ranges in spec §6's table (e.g. inflow_rate 0 passes). Invalid config is
// a programming error per spec §7 ("fail fast in debug builds"); Validate
// only reports it, the CLI decides whether to panic.
func (c SimulationConfig) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{c.InflowRate >= 0, "inflow_rate must be >= 0"},
		{c.TimeScale > 0 && c.TimeScale <= 5.0, "time_scale must be in (0, 5.0]"},
		{c.TruckRatio >= 0 && c.TruckRatio <= 1.0, "truck_ratio must be in [0, 1]"},
		{c.Politeness >= 0 && c.Politeness <= 1.0, "politeness must be in [0, 1]"},
		{c.SafeTimeGap > 0, "safe_time_gap must be > 0"},
		{c.MaxAccel > 0, "max_accel must be > 0"},
		{c.AccelerationNoise >= 0, "acceleration_noise must be >= 0"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("config: %s", chk.name)
		}
	}
	return nil
}

// Clamped returns c with every field clamped into bounds that Validate
// accepts (not the narrower table ranges in the field comments), used by hosts that want to sanitize UI slider values instead of failing.
func (c SimulationConfig) Clamped() SimulationConfig {
	c.InflowRate = lo.Clamp(c.InflowRate, 0, 1e6)
	c.TimeScale = lo.Clamp(c.TimeScale, 0.1, 5.0)
	c.TruckRatio = lo.Clamp(c.TruckRatio, 0, 1.0)
	c.Politeness = lo.Clamp(c.Politeness, 0, 1.0)
	c.SafeTimeGap = lo.Clamp(c.SafeTimeGap, 0.1, 10)
	c.MaxAccel = lo.Clamp(c.MaxAccel, 0.1, 10)
	c.AccelerationNoise = lo.Clamp(c.AccelerationNoise, 0, 10)
	return c
}
