package automation

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/san-kum/antnav/internal/config"
	"github.com/san-kum/antnav/internal/experiment"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Preset, when set, is the base configuration
// and the other fields override it when non-zero.
type ScenarioStep struct {
	Name       string              `yaml:"name"`
	Preset     string              `yaml:"preset"`
	SunAzimuth *float64            `yaml:"sun_azimuth"`
	Noise      *float64            `yaml:"noise"`
	Seed       int64               `yaml:"seed"`
	StepSize   float64             `yaml:"step_size"`
	Mode       string              `yaml:"mode"`
	Moves      []config.MoveConfig `yaml:"moves"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves a step into a full run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Name != "" {
		cfg.Name = s.Name
	}
	if s.SunAzimuth != nil {
		cfg.SunAzimuth = *s.SunAzimuth
	}
	if s.Noise != nil {
		cfg.Noise = *s.Noise
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.StepSize != 0 {
		cfg.StepSize = s.StepSize
	}
	if s.Mode != "" {
		cfg.Mode = s.Mode
	}
	if len(s.Moves) > 0 {
		cfg.Moves = s.Moves
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order.
func RunScenario(ctx context.Context, scenario *Scenario, logger *zap.Logger) ([]*experiment.Result, error) {
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("running scenario step",
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("name", cfg.Name),
		)

		result, err := experiment.New(experiment.FromConfig(cfg), experiment.WithLogger(logger)).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// NoiseSweep repeats one run across compass noise levels.
type NoiseSweep struct {
	Base   experiment.Config
	Levels []float64
	// Workers bounds parallelism; zero means GOMAXPROCS.
	Workers int
}

// SweepPoint is the outcome at one noise level.
type SweepPoint struct {
	Noise         float64
	Seed          int64
	FinalError    float64
	TotalDistance float64
	Efficiency    float64
	Steps         int
	Result        *experiment.Result
}

// RunSweep runs every level in parallel, each with its own agent and random
// source seeded Base.Seed+i. Points come back in level order.
func RunSweep(ctx context.Context, sweep *NoiseSweep, logger *zap.Logger) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(sweep.Levels))

	workers := sweep.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, noise := range sweep.Levels {
		cfg := sweep.Base
		cfg.Noise = noise
		cfg.Seed = sweep.Base.Seed + int64(i)
		cfg.Name = fmt.Sprintf("%s_noise_%g", sweep.Base.Name, noise)

		g.Go(func() error {
			res, err := experiment.New(cfg, experiment.WithLogger(logger)).Run(ctx)
			if err != nil {
				return fmt.Errorf("noise %g: %w", noise, err)
			}
			points[i] = SweepPoint{
				Noise:         noise,
				Seed:          cfg.Seed,
				FinalError:    res.Summary.StraightLine,
				TotalDistance: res.Summary.Odometer,
				Efficiency:    res.Summary.Efficiency,
				Steps:         res.Summary.StepsToHome,
				Result:        res,
			}
			logger.Debug("sweep point done", zap.Float64("noise", noise), zap.Float64("final_error", points[i].FinalError))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
