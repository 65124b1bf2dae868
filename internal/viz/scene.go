package viz

import (
	"math"

	"github.com/san-kum/cycloid/internal/dynamo"
)

// Title is shown above the plot.
const Title = "Rolling circle tracing a brachistochrone"

// Viewport maps plot coordinates to canvas dots with equal scale on both
// axes. Y is flipped so that up in the plot is up on screen.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	Scale      float64
	Cols, Rows int
}

// NewViewport fits [xmin, xmax] into cols cells and derives the row count
// from the y span.
func NewViewport(xmin, xmax, ymin, ymax float64, cols int) *Viewport {
	if cols < 1 {
		cols = 1
	}
	scale := float64(cols*2-1) / (xmax - xmin)
	rows := int(math.Ceil(((ymax-ymin)*scale + 1) / 4))
	if rows < 1 {
		rows = 1
	}
	return &Viewport{
		XMin: xmin, XMax: xmax,
		YMin: ymin, YMax: ymax,
		Scale: scale,
		Cols:  cols,
		Rows:  rows,
	}
}

func (v *Viewport) ToDot(p dynamo.Point) (int, int) {
	x := (p.X - v.XMin) * v.Scale
	y := (v.YMax - p.Y) * v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v *Viewport) Length(d float64) int {
	return int(math.Round(d * v.Scale))
}

// PlotBounds is the plot window for a circle of radius a: x spans
// [-a, ceil(2πa + a)], y leaves half a radius under the ground line and
// above the circle's top.
func PlotBounds(a float64) (xmin, xmax, ymin, ymax float64) {
	return -a, math.Ceil(2*math.Pi*a + a), -a / 2, 2*a + a/2
}

// Scene is the rendered state of the animation: a static curve plus the
// moving circle and markers. It implements sim.Renderer.
type Scene struct {
	radius   float64
	curve    []dynamo.Point
	view     *Viewport
	gridStep float64
	center   dynamo.Point
	marker   dynamo.Point
}

func NewScene(radius float64, curve []dynamo.Point, cols int) *Scene {
	xmin, xmax, ymin, ymax := PlotBounds(radius)
	return &Scene{
		radius:   radius,
		curve:    curve,
		view:     NewViewport(xmin, xmax, ymin, ymax, cols),
		gridStep: NiceStep((xmax - xmin) / 10),
		center:   dynamo.Point{X: 0, Y: radius},
	}
}

func (s *Scene) SetCircleCenter(p dynamo.Point)   { s.center = p }
func (s *Scene) SetMarkerPosition(p dynamo.Point) { s.marker = p }

func (s *Scene) Center() dynamo.Point { return s.center }
func (s *Scene) Marker() dynamo.Point { return s.marker }
func (s *Scene) Viewport() *Viewport  { return s.view }

// NewCanvas returns a canvas sized for the scene.
func (s *Scene) NewCanvas() *Canvas {
	return NewCanvas(s.view.Cols, s.view.Rows)
}

// Draw repaints the whole scene into c.
func (s *Scene) Draw(c *Canvas) {
	c.Clear()
	s.drawGrid(c)
	s.drawAxes(c)
	s.drawCurve(c)

	cx, cy := s.view.ToDot(s.center)
	c.DrawCircle(cx, cy, s.view.Length(s.radius), InkCircle)
	c.FillDot(cx, cy, 1, InkCenter)

	mx, my := s.view.ToDot(s.marker)
	c.FillDot(mx, my, 1, InkMarker)
}

func (s *Scene) drawGrid(c *Canvas) {
	v := s.view
	w, h := c.SubWidth()-1, c.SubHeight()-1
	for x := math.Ceil(v.XMin/s.gridStep) * s.gridStep; x <= v.XMax; x += s.gridStep {
		px, _ := v.ToDot(dynamo.Point{X: x})
		c.DrawDashedLine(px, 0, px, h, 1, 3, InkGrid)
	}
	for y := math.Ceil(v.YMin/s.gridStep) * s.gridStep; y <= v.YMax; y += s.gridStep {
		_, py := v.ToDot(dynamo.Point{Y: y})
		c.DrawDashedLine(0, py, w, py, 1, 3, InkGrid)
	}
}

func (s *Scene) drawAxes(c *Canvas) {
	ox, oy := s.view.ToDot(dynamo.Point{})
	c.DrawDashedLine(0, oy, c.SubWidth()-1, oy, 3, 2, InkAxis)
	c.DrawDashedLine(ox, 0, ox, c.SubHeight()-1, 3, 2, InkAxis)
}

func (s *Scene) drawCurve(c *Canvas) {
	if len(s.curve) == 0 {
		return
	}
	px, py := s.view.ToDot(s.curve[0])
	for _, p := range s.curve[1:] {
		x, y := s.view.ToDot(p)
		if x == px && y == py {
			continue
		}
		c.DrawLine(px, py, x, y, InkCurve)
		px, py = x, y
	}
}

// NiceStep rounds raw up to 1, 2 or 5 times a power of ten.
func NiceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / exp; {
	case f <= 1:
		return exp
	case f <= 2:
		return 2 * exp
	case f <= 5:
		return 5 * exp
	}
	return 10 * exp
}
