package config

import "sort"

// presets are the foraging patterns runs can be started from. Callers get
// copies through GetPreset.
var presets = map[string]*Config{
	"simple": {
		Name: "simple", SunAzimuth: 90, Noise: 0.05, StepSize: 1.0, Mode: ModeTurn,
		Moves: []MoveConfig{{30, 20}, {-45, 15}, {60, 25}},
	},
	"complex": {
		Name: "complex", SunAzimuth: 90, Noise: 0.05, StepSize: 1.0, Mode: ModeTurn,
		Moves: []MoveConfig{{45, 15}, {-30, 20}, {60, 10}, {-45, 18}, {90, 12}, {-60, 22}},
	},
	"comparison": {
		Name: "comparison", SunAzimuth: 90, Noise: 0.05, StepSize: 1.0, Mode: ModeTurn,
		Moves: []MoveConfig{{45, 15}, {-30, 20}, {60, 10}, {-45, 18}},
	},
	"square": {
		Name: "square", SunAzimuth: 90, Noise: 0.05, StepSize: 1.0, Mode: ModeTurn,
		Moves: []MoveConfig{{0, 10}, {90, 10}, {90, 10}, {90, 10}},
	},
	"straight": {
		Name: "straight", SunAzimuth: 90, Noise: 0, StepSize: 1.0, Mode: ModeTurn,
		Moves: []MoveConfig{{0, 10}},
	},
	"sunward": {
		Name: "sunward", SunAzimuth: 90, Noise: 0.1, StepSize: 1.0, Mode: ModeCompass,
		Moves: []MoveConfig{{-60, 18}, {-20, 12}, {40, 15}, {10, 20}},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil if there is none.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = p.Name
	cfg.SunAzimuth = p.SunAzimuth
	cfg.Noise = p.Noise
	cfg.StepSize = p.StepSize
	cfg.Mode = p.Mode
	cfg.Moves = clone(p.Moves)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
