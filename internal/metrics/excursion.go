package metrics

import (
	"math"

	"github.com/san-kum/antnav/internal/navigation"
)

// MaxExcursion is the farthest the agent got from home, by home vector.
type MaxExcursion struct {
	max float64
}

func NewMaxExcursion() *MaxExcursion { return &MaxExcursion{} }

func (m *MaxExcursion) Name() string { return "max_excursion" }

func (m *MaxExcursion) Observe(_ navigation.Phase, s navigation.Snapshot) {
	m.max = math.Max(m.max, s.HomeVector.Norm())
}

func (m *MaxExcursion) Value() float64 { return m.max }

func (m *MaxExcursion) Reset() { m.max = 0 }

// HomingError is the true distance from home at the last observed move,
// using absolute coordinates.
type HomingError struct {
	home, last navigation.Vec2
	seen       bool
}

func NewHomingError() *HomingError { return &HomingError{} }

func (h *HomingError) Name() string { return "homing_error" }

func (h *HomingError) Observe(_ navigation.Phase, s navigation.Snapshot) {
	if !h.seen {
		// Home is the first position minus its own displacement.
		h.home = s.Position.Add(s.HomeVector)
		h.seen = true
	}
	h.last = s.Position
}

func (h *HomingError) Value() float64 {
	if !h.seen {
		return 0
	}
	return h.last.Sub(h.home).Norm()
}

func (h *HomingError) Reset() { *h = HomingError{} }

// HomingDistance is the distance walked during the homing phase.
type HomingDistance struct {
	start, last float64
	started     bool
}

func NewHomingDistance() *HomingDistance { return &HomingDistance{} }

func (h *HomingDistance) Name() string { return "homing_distance" }

func (h *HomingDistance) Observe(phase navigation.Phase, s navigation.Snapshot) {
	if phase != navigation.PhaseHoming {
		h.start = s.Odometer
		return
	}
	if !h.started {
		h.started = true
	}
	h.last = s.Odometer
}

func (h *HomingDistance) Value() float64 {
	if !h.started {
		return 0
	}
	return h.last - h.start
}

func (h *HomingDistance) Reset() { *h = HomingDistance{} }
