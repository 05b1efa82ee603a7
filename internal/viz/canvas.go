package viz

import (
	"math"
	"strings"

	"github.com/san-kum/antnav/internal/navigation"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights a dot at sub-pixel (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels; anything outside is ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPath joins consecutive points.
func (c *Canvas) DrawPath(f Frame, pts []navigation.Vec2) {
	if len(pts) == 1 {
		c.Set(f.Project(pts[0]))
		return
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := f.Project(pts[i-1])
		x1, y1 := f.Project(pts[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawMarker draws a small cross centred on p.
func (c *Canvas) DrawMarker(f Frame, p navigation.Vec2) {
	x, y := f.Project(p)
	c.DrawLine(x-2, y, x+2, y)
	c.DrawLine(x, y-2, x, y+2)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Frame maps world coordinates onto a canvas's sub-pixel grid with one
// scale for both axes, north up.
type Frame struct {
	minX, maxY float64
	scale      float64
	margin     int
}

// NewFrame fits pts into c, leaving a margin for markers.
func NewFrame(c *Canvas, pts []navigation.Vec2) Frame {
	const margin = 2
	f := Frame{scale: 1, margin: margin}
	if len(pts) == 0 {
		return f
	}

	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	w := float64(c.Width*2 - 1 - 2*margin)
	h := float64(c.Height*4 - 1 - 2*margin)
	rangeX := math.Max(maxX-minX, 1e-9)
	rangeY := math.Max(maxY-minY, 1e-9)
	f.scale = math.Max(math.Min(w/rangeX, h/rangeY), 0)
	f.minX = minX
	f.maxY = maxY
	return f
}

func (f Frame) Project(p navigation.Vec2) (int, int) {
	x := int(math.Round((p.X-f.minX)*f.scale)) + f.margin
	y := int(math.Round((f.maxY-p.Y)*f.scale)) + f.margin
	return x, y
}

// PathCanvas renders the whole trajectory with the nest marked.
func PathCanvas(tr navigation.Trajectory, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if tr.Len() == 0 {
		return c
	}
	pts := tr.Positions()
	f := NewFrame(c, pts)
	c.DrawPath(f, pts)
	c.DrawMarker(f, tr.At(0).Position)
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
