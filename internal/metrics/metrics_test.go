package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/antnav/internal/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithMetrics(t *testing.T, moves []navigation.Move, step float64) (*navigation.Controller, []Metric) {
	t.Helper()
	agent, err := navigation.NewPathIntegrator(navigation.Vec2{X: 3, Y: 4}, 0, navigation.WithSeed(1))
	require.NoError(t, err)

	ctrl := navigation.NewController(agent)
	ms := Defaults()
	for _, m := range ms {
		ctrl.AddObserver(Observer(m))
	}

	require.NoError(t, ctrl.ExecuteForagingRun(moves))
	_, err = ctrl.ExecuteReturnHome(step)
	require.NoError(t, err)
	return ctrl, ms
}

func TestDefaultMetrics_OutAndBack(t *testing.T) {
	ctrl, ms := runWithMetrics(t, []navigation.Move{{TurnDeg: 0, Distance: 6}, {TurnDeg: 90, Distance: 8}}, 1)
	values := Collect(ms)

	assert.InDelta(t, 10, values["max_excursion"], 1e-9)
	assert.InDelta(t, ctrl.Summary().StraightLine, values["homing_error"], 1e-12)
	assert.LessOrEqual(t, values["homing_error"], navigation.ArrivalThreshold)
	assert.InDelta(t, 10, values["homing_distance"], 1e-9)
	assert.Greater(t, values["mean_heading_change"], 0.0)
}

func TestMeanHeadingChange_WrapsShortestTurn(t *testing.T) {
	m := NewMeanHeadingChange()
	m.Observe(navigation.PhaseForaging, navigation.Snapshot{Heading: navigation.Radians(350)})
	m.Observe(navigation.PhaseForaging, navigation.Snapshot{Heading: navigation.Radians(10)})

	assert.InDelta(t, navigation.Radians(20), m.Value(), 1e-12)

	m.Reset()
	assert.Zero(t, m.Value())
}

func TestMaxExcursion(t *testing.T) {
	m := NewMaxExcursion()
	for _, hv := range []navigation.Vec2{{X: 1}, {X: -5}, {Y: 2}} {
		m.Observe(navigation.PhaseForaging, navigation.Snapshot{HomeVector: hv})
	}
	assert.Equal(t, 5.0, m.Value())
	m.Reset()
	assert.Zero(t, m.Value())
}

func TestHomingError_NoObservations(t *testing.T) {
	h := NewHomingError()
	assert.Zero(t, h.Value())

	h.Observe(navigation.PhaseHoming, navigation.Snapshot{
		Position:   navigation.Vec2{X: 1, Y: 1},
		HomeVector: navigation.Vec2{X: -1, Y: -1},
	})
	assert.InDelta(t, math.Sqrt2, h.Value(), 1e-12)
}

func TestHomingDistance_NoHoming(t *testing.T) {
	h := NewHomingDistance()
	h.Observe(navigation.PhaseForaging, navigation.Snapshot{Odometer: 12})
	assert.Zero(t, h.Value())
}
