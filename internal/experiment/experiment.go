package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/antnav/internal/config"
	"github.com/san-kum/antnav/internal/metrics"
	"github.com/san-kum/antnav/internal/navigation"
	"go.uber.org/zap"
)

type Config struct {
	Name       string
	SunAzimuth float64
	Noise      float64
	Seed       int64
	StepSize   float64
	MaxSteps   int
	Mode       string
	Start      navigation.Vec2
	Moves      []navigation.Move
}

// FromConfig flattens a loaded configuration into an experiment config.
func FromConfig(c *config.Config) Config {
	return Config{
		Name:       c.Name,
		SunAzimuth: c.SunAzimuth,
		Noise:      c.Noise,
		Seed:       c.Seed,
		StepSize:   c.StepSize,
		MaxSteps:   c.MaxSteps,
		Mode:       c.Mode,
		Start:      c.StartPoint(),
		Moves:      c.NavMoves(),
	}
}

type Result struct {
	Config     Config
	Summary    navigation.Summary
	Trajectory navigation.Trajectory
	Metrics    map[string]float64
	Elapsed    time.Duration
}

type Experiment struct {
	cfg        Config
	registry   *Registry
	randSource *rand.Rand
	logger     *zap.Logger
	metrics    []metrics.Metric
	observers  []navigation.Observer
}

type Option func(*Experiment)

func WithLogger(l *zap.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func WithMetrics(ms ...metrics.Metric) Option {
	return func(e *Experiment) { e.metrics = ms }
}

// New prepares a run. A zero seed is replaced by a clock-derived one, which
// is reported back in the result config. A zero MaxSteps means the default
// homing cap; a negative one disables it.
func New(cfg Config, opts ...Option) *Experiment {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = navigation.DefaultMaxSteps
	}
	e := &Experiment{
		cfg:        cfg,
		registry:   NewRegistry(),
		randSource: rand.New(rand.NewSource(cfg.Seed)),
		logger:     zap.NewNop(),
		metrics:    metrics.Defaults(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddObserver attaches an extra read-only observer to the controller.
func (e *Experiment) AddObserver(o navigation.Observer) {
	e.observers = append(e.observers, o)
}

func (e *Experiment) Config() Config { return e.cfg }

// Run executes foraging then homing. The context is checked between phases;
// the phases themselves are bounded and not interruptible.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	forage, err := e.registry.GetForager(e.cfg.Mode)
	if err != nil {
		return nil, err
	}

	agent, err := navigation.NewPathIntegrator(e.cfg.Start, e.cfg.Noise, navigation.WithRand(e.randSource))
	if err != nil {
		return nil, err
	}
	agent.Sensor().Calibrate(e.cfg.SunAzimuth)

	log := e.logger.With(zap.String("run", e.cfg.Name), zap.Int64("seed", e.cfg.Seed))
	log.Debug("sensor calibrated", zap.Float64("sun_azimuth", e.cfg.SunAzimuth))

	ctrl := navigation.NewController(agent,
		navigation.WithMaxSteps(e.cfg.MaxSteps),
		navigation.WithLogger(log),
	)
	for _, m := range e.metrics {
		m.Reset()
		ctrl.AddObserver(metrics.Observer(m))
	}
	for _, o := range e.observers {
		ctrl.AddObserver(o)
	}

	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := forage(ctrl, e.cfg.Moves); err != nil {
		return nil, fmt.Errorf("foraging: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := ctrl.ExecuteReturnHome(e.cfg.StepSize); err != nil {
		return nil, fmt.Errorf("homing: %w", err)
	}

	return &Result{
		Config:     e.cfg,
		Summary:    ctrl.Summary(),
		Trajectory: agent.Trajectory(),
		Metrics:    metrics.Collect(e.metrics),
		Elapsed:    time.Since(start),
	}, nil
}
