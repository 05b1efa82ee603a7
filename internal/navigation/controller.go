package navigation

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	// ArrivalThreshold is the home distance, in meters, at which homing stops.
	ArrivalThreshold = 0.5

	// DefaultMaxSteps caps the homing loop.
	DefaultMaxSteps = 10000
)

// Phase is the stage a Controller has driven its agent to.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseForaging
	PhaseHoming
	PhaseArrived
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseForaging:
		return "foraging"
	case PhaseHoming:
		return "homing"
	case PhaseArrived:
		return "arrived"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Move is one foraging leg: turn by TurnDeg degrees, then walk Distance meters.
type Move struct {
	TurnDeg  float64
	Distance float64
}

// Observer is notified after every movement the controller issues. It must
// not mutate the agent.
type Observer interface {
	OnMove(phase Phase, s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(phase Phase, s Snapshot)

func (f ObserverFunc) OnMove(phase Phase, s Snapshot) { f(phase, s) }

// Summary holds the run-level metrics of a controller.
type Summary struct {
	Phase        Phase
	Odometer     float64
	StraightLine float64
	HomeDistance float64
	Efficiency   float64
	StepsToHome  int
	Drift        float64
	// HomingStart is the trajectory index of the last foraging snapshot,
	// or -1 if homing never started.
	HomingStart int
}

// Controller sequences a run over a borrowed PathIntegrator:
// init, foraging, homing, arrived. It never goes back to foraging.
type Controller struct {
	agent       *PathIntegrator
	phase       Phase
	steps       int
	maxSteps    int
	homingStart int
	observers   []Observer
	logger      *zap.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMaxSteps sets the homing iteration ceiling. n <= 0 disables it.
func WithMaxSteps(n int) ControllerOption {
	return func(c *Controller) { c.maxSteps = n }
}

// WithLogger sets the logger used for phase changes and homing progress.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewController(agent *PathIntegrator, opts ...ControllerOption) *Controller {
	c := &Controller{
		agent:       agent,
		phase:       PhaseInit,
		maxSteps:    DefaultMaxSteps,
		homingStart: -1,
		observers:   make([]Observer, 0),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Controller) Phase() Phase { return c.phase }

// Agent returns the borrowed integrator.
func (c *Controller) Agent() *PathIntegrator { return c.agent }

func (c *Controller) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	c.logger.Debug("phase change",
		zap.Stringer("from", c.phase),
		zap.Stringer("to", p),
		zap.Float64("home_distance", c.agent.HomeDistance()),
	)
	c.phase = p
}

func (c *Controller) move(distance float64) {
	c.agent.MoveForward(distance)
	s := c.agent.Snapshot()
	for _, o := range c.observers {
		o.OnMove(c.phase, s)
	}
}

func (c *Controller) beginForaging() error {
	switch c.phase {
	case PhaseInit:
		c.setPhase(PhaseForaging)
		return nil
	case PhaseForaging:
		return nil
	default:
		return &RunError{Phase: c.phase, Step: c.steps, Wrapped: ErrPhaseTransition}
	}
}

// ExecuteForagingRun applies moves in order: each one turns, then walks.
func (c *Controller) ExecuteForagingRun(moves []Move) error {
	if err := c.beginForaging(); err != nil {
		return err
	}
	for i, m := range moves {
		c.agent.Turn(m.TurnDeg)
		c.move(m.Distance)
		c.logger.Debug("foraging move",
			zap.Int("move", i+1),
			zap.Float64("turn_deg", m.TurnDeg),
			zap.Float64("distance", m.Distance),
			zap.Float64("x", c.agent.Position().X),
			zap.Float64("y", c.agent.Position().Y),
		)
	}
	c.logger.Info("foraging complete", zap.Float64("home_distance", c.agent.HomeDistance()))
	return nil
}

// ExecuteCompassRun is a foraging run steered by the sun: each move's TurnDeg
// is a bearing relative to the observed sun, taken with one compass reading.
func (c *Controller) ExecuteCompassRun(moves []Move) error {
	if err := c.beginForaging(); err != nil {
		return err
	}
	for i, m := range moves {
		c.agent.AlignToSun(m.TurnDeg)
		c.move(m.Distance)
		c.logger.Debug("compass move",
			zap.Int("move", i+1),
			zap.Float64("sun_offset_deg", m.TurnDeg),
			zap.Float64("heading_deg", Degrees(c.agent.Heading())),
			zap.Float64("distance", m.Distance),
		)
	}
	c.logger.Info("foraging complete", zap.Float64("home_distance", c.agent.HomeDistance()))
	return nil
}

// ExecuteReturnHome walks home along the home vector in steps of at most
// stepSize until within ArrivalThreshold, and returns the number of steps.
func (c *Controller) ExecuteReturnHome(stepSize float64) (int, error) {
	if !(stepSize > 0) {
		return 0, fmt.Errorf("%w: step size must be positive, got %f", ErrInvalidConfiguration, stepSize)
	}
	if c.phase != PhaseInit && c.phase != PhaseForaging {
		return 0, &RunError{Phase: c.phase, Step: c.steps, Wrapped: ErrPhaseTransition}
	}

	c.homingStart = c.agent.log.Len() - 1
	c.setPhase(PhaseHoming)

	steps := 0
	for c.agent.HomeDistance() > ArrivalThreshold {
		if c.maxSteps > 0 && steps >= c.maxSteps {
			c.steps = steps
			return steps, &RunError{Phase: c.phase, Step: steps, Wrapped: ErrStepLimit}
		}

		c.agent.NavigateHome()
		c.move(math.Min(stepSize, c.agent.HomeDistance()))
		steps++

		if steps%10 == 0 {
			c.logger.Debug("homing progress",
				zap.Int("step", steps),
				zap.Float64("home_distance", c.agent.HomeDistance()),
			)
		}
	}

	c.steps = steps
	c.setPhase(PhaseArrived)
	c.logger.Info("home reached",
		zap.Int("steps", steps),
		zap.Float64("x", c.agent.Position().X),
		zap.Float64("y", c.agent.Position().Y),
	)
	return steps, nil
}

// Summary reports the run metrics as of now.
func (c *Controller) Summary() Summary {
	return Summary{
		Phase:        c.phase,
		Odometer:     c.agent.Odometer(),
		StraightLine: c.agent.StraightLineDistance(),
		HomeDistance: c.agent.HomeDistance(),
		Efficiency:   c.agent.PathEfficiency(),
		StepsToHome:  c.steps,
		Drift:        c.agent.Drift(),
		HomingStart:  c.homingStart,
	}
}
