package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/antnav/internal/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straightRun(t *testing.T) (navigation.Trajectory, navigation.Summary) {
	t.Helper()
	agent, err := navigation.NewPathIntegrator(navigation.Vec2{}, 0, navigation.WithSeed(1))
	require.NoError(t, err)
	ctrl := navigation.NewController(agent)
	require.NoError(t, ctrl.ExecuteForagingRun([]navigation.Move{{TurnDeg: 0, Distance: 6}, {TurnDeg: 90, Distance: 8}}))
	_, err = ctrl.ExecuteReturnHome(1)
	require.NoError(t, err)
	return agent.Trajectory(), ctrl.Summary()
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	assert.Equal(t, rune(brailleBlank|0x1|0x80), c.Grid[0][0])
	assert.Equal(t, rune(brailleBlank), c.Grid[0][1])

	c.Clear()
	assert.Equal(t, rune(brailleBlank), c.Grid[0][0])
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		assert.Equal(t, rune(brailleBlank|0x1|0x8), c.Grid[0][col])
	}
}

func TestFrameProjection(t *testing.T) {
	c := NewCanvas(10, 5)
	pts := []navigation.Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}}
	f := NewFrame(c, pts)

	x0, y0 := f.Project(pts[0])
	x1, y1 := f.Project(pts[1])
	assert.Less(t, x0, x1)
	assert.Greater(t, y0, y1, "north is up")
	assert.GreaterOrEqual(t, x0, 0)
	assert.Less(t, y0, c.Height*4)
	assert.Less(t, x1, c.Width*2)
}

func TestPathCanvas(t *testing.T) {
	tr, _ := straightRun(t)
	out := PathCanvas(tr, 30, 10).String()

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 10)
	lit := 0
	for _, r := range out {
		if r > brailleBlank {
			lit++
		}
	}
	assert.Greater(t, lit, 10)

	single := navigation.NewTrajectory([]navigation.Snapshot{{}})
	assert.NotPanics(t, func() { PathCanvas(single, 5, 3) })
	assert.NotPanics(t, func() { PathCanvas(navigation.Trajectory{}, 5, 3) })
}

func TestDistancePlot(t *testing.T) {
	tr, _ := straightRun(t)
	out := DistancePlot(tr, 60, 8)
	assert.Contains(t, out, "home distance")
	assert.Empty(t, DistancePlot(navigation.Trajectory{}, 60, 8))
}

func TestTrajectorySVG(t *testing.T) {
	tr, _ := straightRun(t)
	svg := TrajectorySVG(tr, 90, 400, 300)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `<path fill="none"`)
	assert.Equal(t, tr.Len()-1, strings.Count(svg, " L"))
	assert.Positive(t, strings.Count(svg, `marker-end="url(#arrow)"`))
	assert.Equal(t, 3, strings.Count(svg, "<circle"), "nest, end point and sun")

	assert.Empty(t, TrajectorySVG(navigation.NewTrajectory([]navigation.Snapshot{{}}), 90, 400, 300))
}

func TestTrajectorySVG_SunArrow(t *testing.T) {
	tr, _ := straightRun(t)

	tests := []struct {
		azimuth float64
		want    string
	}{
		{90, `x1="360.0" y1="40.0" x2="360.0" y2="12.0"`},
		{0, `x1="360.0" y1="40.0" x2="388.0" y2="40.0"`},
		{180, `x1="360.0" y1="40.0" x2="332.0" y2="40.0"`},
		{270, `x1="360.0" y1="40.0" x2="360.0" y2="68.0"`},
	}
	for _, tt := range tests {
		svg := TrajectorySVG(tr, tt.azimuth, 400, 300)
		assert.Contains(t, svg, `<g id="sun">`)
		assert.Contains(t, svg, tt.want, "azimuth %v", tt.azimuth)
	}
}

func TestSunArrow(t *testing.T) {
	tests := []struct {
		azimuth float64
		want    string
	}{
		{0, "→"},
		{45, "↗"},
		{90, "↑"},
		{180, "←"},
		{270, "↓"},
		{-90, "↓"},
		{350, "→"},
		{450, "↑"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SunArrow(tt.azimuth), "azimuth %v", tt.azimuth)
	}
}

func TestPlaybackUpdate(t *testing.T) {
	tr, sum := straightRun(t)
	m := NewPlayback("run", tr, sum.HomingStart, 90)
	assert.NotNil(t, m.Init())

	next, cmd := m.Update(TickMsg{})
	m = next.(Playback)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.Position())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Playback)
	assert.False(t, m.Running())
	next, _ = m.Update(TickMsg{})
	m = next.(Playback)
	assert.Equal(t, 1, m.Position(), "paused playback holds its frame")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m = next.(Playback)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m = next.(Playback)
	assert.Equal(t, 0, m.Position())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Playback)
	for i := 0; i < tr.Len()+5; i++ {
		next, _ = m.Update(TickMsg{})
		m = next.(Playback)
	}
	assert.Equal(t, tr.Len()-1, m.Position())
	assert.False(t, m.Running(), "playback stops on the last frame")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPlaybackView(t *testing.T) {
	tr, sum := straightRun(t)
	m := NewPlayback("straight", tr, sum.HomingStart, 90)

	view := m.View()
	assert.Contains(t, view, "STRAIGHT")
	assert.Contains(t, view, "init")
	assert.Contains(t, view, "↑ 90°")

	for i := 0; i < tr.Len(); i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Playback)
	}
	assert.Contains(t, m.View(), "arrived")
}

func TestPhaseAt(t *testing.T) {
	tr, sum := straightRun(t)
	m := NewPlayback("p", tr, sum.HomingStart, 90)

	assert.Equal(t, navigation.PhaseInit, m.phaseAt(0))
	assert.Equal(t, navigation.PhaseForaging, m.phaseAt(2))
	assert.Equal(t, navigation.PhaseHoming, m.phaseAt(3))
	assert.Equal(t, navigation.PhaseArrived, m.phaseAt(tr.Len()-1))
}

func TestPanel(t *testing.T) {
	out := Panel("summary", []Row{Rowf("Odometer", "%.1f", 24.0), {Label: "Phase", Value: "arrived"}})
	assert.Contains(t, out, "summary")
	assert.Contains(t, out, "24.0")
	assert.Contains(t, out, "arrived")
}
