package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/antnav/internal/navigation"
)

const (
	// ArrowScale is the fraction of each home vector drawn as an arrow.
	ArrowScale = 0.2

	sunArrowLength = 28.0
	sunInset       = 40.0
)

// TrajectorySVG draws the path, the nest and the end point, with home-vector
// arrows at roughly a dozen evenly spaced snapshots and a sun-direction arrow
// in the top right corner. Trajectories with fewer than two snapshots produce
// an empty string.
func TrajectorySVG(tr navigation.Trajectory, sunAzimuthDeg float64, width, height int) string {
	if tr.Len() < 2 {
		return ""
	}

	pts := tr.Positions()
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(p navigation.Vec2) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<defs><marker id="arrow" markerWidth="6" markerHeight="6" refX="5" refY="3" orient="auto"><polygon points="0,0 6,3 0,6" fill="#ff4444"/></marker><marker id="sunhead" markerWidth="6" markerHeight="6" refX="5" refY="3" orient="auto"><polygon points="0,0 6,3 0,6" fill="#ffaa00"/></marker></defs>
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ccff" stroke-width="1.5" d="M`,
		width, height, width, height)

	for i, p := range pts {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
`)

	every := max(1, tr.Len()/12)
	for i := 0; i < tr.Len(); i += every {
		s := tr.At(i)
		if s.HomeVector.Norm() < navigation.HomeEpsilon {
			continue
		}
		x0, y0 := project(s.Position)
		x1, y1 := project(s.Position.Add(s.HomeVector.Scale(ArrowScale)))
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ff4444" stroke-width="1" marker-end="url(#arrow)"/>
`, x0, y0, x1, y1)
	}

	// Screen y grows downward, so the sun's north component is negated.
	sun := navigation.Radians(sunAzimuthDeg)
	sx, sy := float64(width)-sunInset, sunInset
	fmt.Fprintf(&sb, `<g id="sun"><circle cx="%.1f" cy="%.1f" r="4" fill="#ffaa00"/><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ffaa00" stroke-width="3" marker-end="url(#sunhead)"/></g>
`, sx, sy, sx, sy, sx+sunArrowLength*math.Cos(sun), sy-sunArrowLength*math.Sin(sun))

	hx, hy := project(tr.At(0).Position)
	ex, ey := project(tr.Last().Position)
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="5" fill="#00ff88"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="#ffcc00"/>
</svg>`, hx, hy, ex, ey)

	return sb.String()
}
