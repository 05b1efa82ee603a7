package navigation

import (
	"math"
	"math/rand"
)

const (
	// HomeEpsilon is the home vector length below which the direction home
	// is treated as undefined.
	HomeEpsilon = 0.01
)

// PathIntegrator is an agent that keeps a home vector by summing its own
// movements. It exclusively owns its SunCompass.
type PathIntegrator struct {
	position   Vec2
	home       Vec2
	homeVector Vec2
	heading    float64
	odometer   float64
	sensor     *SunCompass
	log        Trajectory
}

type integratorOptions struct {
	rng *rand.Rand
}

// Option configures a PathIntegrator.
type Option func(*integratorOptions)

// WithRand injects the random source used by the compass.
func WithRand(rng *rand.Rand) Option {
	return func(o *integratorOptions) { o.rng = rng }
}

// WithSeed seeds a private random source for the compass.
func WithSeed(seed int64) Option {
	return func(o *integratorOptions) { o.rng = rand.New(rand.NewSource(seed)) }
}

// NewPathIntegrator places an agent at start, which also becomes home. noise
// is the compass reading error in radians.
func NewPathIntegrator(start Vec2, noise float64, opts ...Option) (*PathIntegrator, error) {
	var o integratorOptions
	for _, opt := range opts {
		opt(&o)
	}

	sensor, err := NewSunCompass(noise, o.rng)
	if err != nil {
		return nil, err
	}

	p := &PathIntegrator{
		position: start,
		home:     start,
		sensor:   sensor,
	}
	p.record()
	return p, nil
}

func (p *PathIntegrator) record() {
	p.log.append(Snapshot{
		Position:   p.position,
		HomeVector: p.homeVector,
		Heading:    p.heading,
		Odometer:   p.odometer,
	})
}

// MoveForward moves distance meters along the current heading. A negative
// distance moves backward, and the odometer adds the raw signed value.
func (p *PathIntegrator) MoveForward(distance float64) {
	movement := Unit(p.heading).Scale(distance)

	p.position = p.position.Add(movement)
	p.homeVector = p.homeVector.Sub(movement)
	p.odometer += distance

	p.record()
}

// Turn rotates the heading by deltaDeg degrees, counterclockwise positive.
func (p *PathIntegrator) Turn(deltaDeg float64) {
	p.heading = NormalizeAngle(p.heading + Radians(deltaDeg))
}

// AlignToSun takes one compass reading and sets the heading to targetDeg
// degrees off the observed sun bearing.
func (p *PathIntegrator) AlignToSun(targetDeg float64) {
	r := p.sensor.Sample()
	p.heading = NormalizeAngle(r.Angle + Radians(targetDeg))
}

// HomeDirection returns the bearing of the home vector in radians. Close to
// home, where that bearing is undefined, it returns the current heading.
func (p *PathIntegrator) HomeDirection() float64 {
	if p.homeVector.Norm() < HomeEpsilon {
		return p.heading
	}
	return p.homeVector.Angle()
}

// HomeDistance returns the length of the home vector.
func (p *PathIntegrator) HomeDistance() float64 {
	return p.homeVector.Norm()
}

// NavigateHome points the agent at home without moving it.
func (p *PathIntegrator) NavigateHome() {
	p.heading = NormalizeAngle(p.HomeDirection())
}

// PathEfficiency is the straight-line distance from home divided by the
// odometer. It is 1 when nothing has moved and is not clamped otherwise.
func (p *PathIntegrator) PathEfficiency() float64 {
	if p.odometer == 0 {
		return 1.0
	}
	return p.position.Sub(p.home).Norm() / p.odometer
}

// StraightLineDistance is the true distance between position and home,
// computed from absolute coordinates rather than the home vector.
func (p *PathIntegrator) StraightLineDistance() float64 {
	return p.position.Sub(p.home).Norm()
}

func (p *PathIntegrator) Position() Vec2 {
	return p.position
}

func (p *PathIntegrator) Home() Vec2 {
	return p.home
}

func (p *PathIntegrator) HomeVector() Vec2 {
	return p.homeVector
}

// Heading returns the current heading in radians, in [0, 2π).
func (p *PathIntegrator) Heading() float64 {
	return p.heading
}

// Odometer returns the sum of all distances passed to MoveForward.
func (p *PathIntegrator) Odometer() float64 {
	return p.odometer
}

// Sensor exposes the compass so callers can place the sun.
func (p *PathIntegrator) Sensor() *SunCompass { return p.sensor }

// Trajectory returns a copy of the movement log.
func (p *PathIntegrator) Trajectory() Trajectory { return p.log.Clone() }

// Snapshot returns the current state as it would be logged.
func (p *PathIntegrator) Snapshot() Snapshot { return p.log.Last() }

// Drift reports how far the accumulated home vector has wandered from
// home minus position.
func (p *PathIntegrator) Drift() float64 {
	d := p.home.Sub(p.position).Sub(p.homeVector)
	return math.Hypot(d.X, d.Y)
}
