package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// File is the root YAML document consumed by cmd/microsim, separating
// "what the simulation needs to run" (Road/Seed) from the host-tunable
// SimulationConfig, mirroring the teacher's Config{Input, Control} split.
type File struct {
	RoadLength float64          `yaml:"road_length"`
	Seed       uint64           `yaml:"seed"`
	Steps      int              `yaml:"steps"`
	Sim        SimulationConfig `yaml:"simulation"`
}

// Load reads and parses a YAML config file from path.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f File
	if err := yaml.UnmarshalStrict(raw, &f); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if f.RoadLength <= 0 {
		f.RoadLength = 5000
	}
	if f.Steps <= 0 {
		f.Steps = 3600
	}
	if f.Sim == (SimulationConfig{}) {
		f.Sim = Default()
	}
	return f, nil
}
