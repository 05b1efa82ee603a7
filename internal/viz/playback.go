package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/antnav/internal/navigation"
)

type TickMsg time.Time

// Playback replays a finished run. It holds its own copy of the trajectory.
type Playback struct {
	title       string
	tr          navigation.Trajectory
	homingStart int
	sunAzimuth  float64
	canvas      *Canvas
	frame       Frame
	pos         int
	running     bool
	interval    time.Duration
}

// NewPlayback prepares a replay. homingStart is the index of the last
// foraging snapshot, or -1 if the run never homed. sunAzimuthDeg is shown as
// a compass arrow.
func NewPlayback(title string, tr navigation.Trajectory, homingStart int, sunAzimuthDeg float64) Playback {
	c := NewCanvas(60, 20)
	return Playback{
		title:       title,
		tr:          tr.Clone(),
		homingStart: homingStart,
		sunAzimuth:  sunAzimuthDeg,
		canvas:      c,
		frame:       NewFrame(c, tr.Positions()),
		running:     true,
		interval:    time.Second / 20,
	}
}

func (m Playback) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Playback) Init() tea.Cmd {
	return m.tick()
}

func (m Playback) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.pos = 0
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		}
	case TickMsg:
		if m.running {
			m.scrub(1)
			if m.pos == m.tr.Len()-1 {
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Playback) scrub(d int) {
	m.pos = max(0, min(m.pos+d, m.tr.Len()-1))
}

// Position is the index of the snapshot currently shown.
func (m Playback) Position() int {
	return m.pos
}

func (m Playback) Running() bool {
	return m.running
}

func (m Playback) phaseAt(i int) navigation.Phase {
	switch {
	case i == 0:
		return navigation.PhaseInit
	case m.homingStart >= 0 && i == m.tr.Len()-1:
		return navigation.PhaseArrived
	case m.homingStart < 0 || i <= m.homingStart:
		return navigation.PhaseForaging
	default:
		return navigation.PhaseHoming
	}
}

func (m Playback) View() string {
	if m.tr.Len() == 0 {
		return "empty trajectory\n"
	}

	m.canvas.Clear()
	pts := m.tr.Positions()
	m.canvas.DrawPath(m.frame, pts[:m.pos+1])
	m.canvas.DrawMarker(m.frame, pts[0])
	canvasView := canvasStyle.Render(m.canvas.String())

	s := m.tr.At(m.pos)
	status := "PLAYING"
	if !m.running {
		status = "PAUSED"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	b.WriteString(status + "\n\n")
	b.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d/%d", m.pos, m.tr.Len()-1)) + "\n")
	b.WriteString(labelStyle.Render("Phase") + valueStyle.Render(m.phaseAt(m.pos).String()) + "\n")
	b.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", s.Position.X, s.Position.Y)) + "\n")
	b.WriteString(labelStyle.Render("Home dist") + valueStyle.Render(fmt.Sprintf("%.2f", s.HomeVector.Norm())) + "\n")
	b.WriteString(labelStyle.Render("Heading") + valueStyle.Render(fmt.Sprintf("%.1f°", navigation.Degrees(s.Heading))) + "\n")
	b.WriteString(labelStyle.Render("Sun") + valueStyle.Render(fmt.Sprintf("%s %.0f°", SunArrow(m.sunAzimuth), m.sunAzimuth)) + "\n")
	b.WriteString(labelStyle.Render("Odometer") + valueStyle.Render(fmt.Sprintf("%.2f", s.Odometer)) + "\n\n")

	progress := 1.0
	if m.tr.Len() > 1 {
		progress = float64(m.pos) / float64(m.tr.Len()-1)
	}
	b.WriteString(ProgressBar(progress, 24) + "\n")
	b.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Rewind Q:Quit\n[ ]:Step"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(b.String()))
}

var compassArrows = []string{"→", "↗", "↑", "↖", "←", "↙", "↓", "↘"}

// SunArrow returns the arrow glyph nearest to an azimuth in degrees,
// counterclockwise from east.
func SunArrow(azimuthDeg float64) string {
	a := navigation.NormalizeAngle(navigation.Radians(azimuthDeg))
	return compassArrows[int(math.Round(a/(math.Pi/4)))%len(compassArrows)]
}
