package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/antnav/internal/navigation"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSunAzimuth = 90.0
	DefaultNoise      = 0.05
	DefaultStepSize   = 1.0
	DefaultMaxSteps   = navigation.DefaultMaxSteps
)

// Foraging modes.
const (
	ModeTurn    = "turn"
	ModeCompass = "compass"
)

type Config struct {
	Name       string       `yaml:"name"`
	SunAzimuth float64      `yaml:"sun_azimuth"`
	Noise      float64      `yaml:"noise"`
	Seed       int64        `yaml:"seed"`
	StepSize   float64      `yaml:"step_size"`
	MaxSteps   int          `yaml:"max_steps"`
	Mode       string       `yaml:"mode"`
	Start      PointConfig  `yaml:"start"`
	Moves      []MoveConfig `yaml:"moves"`
	Log        LogConfig    `yaml:"log"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MoveConfig is one foraging leg. In turn mode Turn is relative to the
// current heading; in compass mode it is relative to the sun.
type MoveConfig struct {
	Turn     float64 `yaml:"turn"`
	Distance float64 `yaml:"distance"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "simple",
		SunAzimuth: DefaultSunAzimuth,
		Noise:      DefaultNoise,
		StepSize:   DefaultStepSize,
		MaxSteps:   DefaultMaxSteps,
		Mode:       ModeTurn,
		Moves:      clone(presets["simple"].Moves),
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values a run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Noise < 0 {
		errs = append(errs, fmt.Errorf("noise must be non-negative, got %f", c.Noise))
	}
	if c.StepSize <= 0 {
		errs = append(errs, fmt.Errorf("step_size must be positive, got %f", c.StepSize))
	}
	if c.Mode != ModeTurn && c.Mode != ModeCompass {
		errs = append(errs, fmt.Errorf("unknown mode %q (want %s or %s)", c.Mode, ModeTurn, ModeCompass))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", navigation.ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

// NavMoves converts the configured legs for the controller.
func (c *Config) NavMoves() []navigation.Move {
	moves := make([]navigation.Move, len(c.Moves))
	for i, m := range c.Moves {
		moves[i] = navigation.Move{TurnDeg: m.Turn, Distance: m.Distance}
	}
	return moves
}

func (c *Config) StartPoint() navigation.Vec2 {
	return navigation.Vec2{X: c.Start.X, Y: c.Start.Y}
}

func clone(moves []MoveConfig) []MoveConfig {
	out := make([]MoveConfig, len(moves))
	copy(out, moves)
	return out
}
