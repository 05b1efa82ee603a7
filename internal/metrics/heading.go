package metrics

import (
	"math"

	"github.com/san-kum/antnav/internal/navigation"
)

// MeanHeadingChange is the average absolute turn between consecutive moves,
// in radians. It measures how winding a path is.
type MeanHeadingChange struct {
	prev    float64
	sum     float64
	samples int
	primed  bool
}

func NewMeanHeadingChange() *MeanHeadingChange { return &MeanHeadingChange{} }

func (m *MeanHeadingChange) Name() string { return "mean_heading_change" }

func (m *MeanHeadingChange) Observe(_ navigation.Phase, s navigation.Snapshot) {
	if m.primed {
		d := s.Heading - m.prev
		// shortest rotation, (-π, π]
		d = math.Atan2(math.Sin(d), math.Cos(d))
		m.sum += math.Abs(d)
		m.samples++
	}
	m.prev = s.Heading
	m.primed = true
}

func (m *MeanHeadingChange) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanHeadingChange) Reset() { *m = MeanHeadingChange{} }
