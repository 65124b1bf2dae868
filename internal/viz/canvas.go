package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
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

// Ink is the colour class of a cell. A cell takes the highest ink drawn
// into it, so markers stay visible over the curve and the grid.
type Ink uint8

const (
	InkNone Ink = iota
	InkGrid
	InkAxis
	InkCurve
	InkCircle
	InkCenter
	InkMarker
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Inks          [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Inks:   make([][]Ink, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Inks[i] = make([]Ink, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the dot at (x, y) with ink. Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int, ink Ink) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if ink > c.Inks[row][col] {
		c.Inks[row][col] = ink
	}
}

// Dot reports whether the dot at (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// InkAt returns the ink of the cell holding dot (x, y).
func (c *Canvas) InkAt(x, y int) Ink {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return InkNone
	}
	return c.Inks[row][col]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Inks[i][j] = InkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink Ink) {
	c.drawPattern(x0, y0, x1, y1, 1, 0, ink)
}

// DrawDashedLine draws dash dots on, gap dots off, repeating.
func (c *Canvas) DrawDashedLine(x0, y0, x1, y1, dash, gap int, ink Ink) {
	c.drawPattern(x0, y0, x1, y1, dash, gap, ink)
}

func (c *Canvas) drawPattern(x0, y0, x1, y1, dash, gap int, ink Ink) {
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
	period := dash + gap

	for n := 0; ; n++ {
		if period <= dash || n%period < dash {
			c.Set(x0, y0, ink)
		}
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

// DrawCircle draws a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int, ink Ink) {
	if r <= 0 {
		c.Set(cx, cy, ink)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y, ink)
		c.Set(cx+y, cy+x, ink)
		c.Set(cx-y, cy+x, ink)
		c.Set(cx-x, cy+y, ink)
		c.Set(cx-x, cy-y, ink)
		c.Set(cx-y, cy-x, ink)
		c.Set(cx+y, cy-x, ink)
		c.Set(cx+x, cy-y, ink)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillDot fills a small disc, used for markers.
func (c *Canvas) FillDot(cx, cy, r int, ink Ink) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r+r {
				c.Set(cx+dx, cy+dy, ink)
			}
		}
	}
}

// String renders the dots without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colours each cell by its ink. Runs of equal ink share one style
// call.
func (c *Canvas) Render(style func(Ink) lipgloss.Style) string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Inks[row][col] == c.Inks[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if ink := c.Inks[row][start]; ink == InkNone {
				b.WriteString(run)
			} else {
				b.WriteString(style(ink).Render(run))
			}
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
