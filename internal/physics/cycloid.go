package physics

import (
	"math"

	"github.com/san-kum/cycloid/internal/dynamo"
)

// Revolution is the rolling angle of one full turn.
const Revolution = 2 * math.Pi

// DefaultCurveSamples is the resolution of the static curve.
const DefaultCurveSamples = 1000

// Position returns the traced rim point after rolling through angle t.
func Position(t, a float64) dynamo.Point {
	return dynamo.Point{
		X: a * (t - math.Sin(t)),
		Y: a * (1 - math.Cos(t)),
	}
}

// Center returns the circle centre after rolling through angle t.
// The horizontal distance equals the arc length rolled, a·t.
func Center(t, a float64) dynamo.Point {
	return dynamo.Point{X: a * t, Y: a}
}

// ArcLength is the length of the traced curve between angle 0 and t.
// One revolution gives 8a.
func ArcLength(t, a float64) float64 {
	return 4 * a * (1 - math.Cos(t/2))
}

// Area is the area between one arch and the base line.
func Area(a float64) float64 {
	return 3 * math.Pi * a * a
}

// PointSpeed is the speed of the traced point when the centre moves at v.
// It is zero at the ground contact and 2v at the top of the arch.
func PointSpeed(t, v float64) float64 {
	return 2 * v * math.Abs(math.Sin(t/2))
}

type Cycloid struct {
	Radius float64
}

func NewCycloid(radius float64) *Cycloid {
	return &Cycloid{Radius: radius}
}

func (c *Cycloid) Position(t float64) dynamo.Point {
	return Position(t, c.Radius)
}

func (c *Cycloid) Center(t float64) dynamo.Point {
	return Center(t, c.Radius)
}

// Curve samples the traced curve at n evenly spaced angles over one
// revolution, both ends included.
func (c *Cycloid) Curve(n int) []dynamo.Point {
	if n < 2 {
		n = 2
	}
	pts := make([]dynamo.Point, n)
	for i := range pts {
		pts[i] = c.Position(Revolution * float64(i) / float64(n-1))
	}
	pts[n-1] = c.Position(Revolution)
	return pts
}

// Height is the largest y the traced point reaches.
func (c *Cycloid) Height() float64 {
	return 2 * c.Radius
}

// Span is the horizontal distance covered by one arch.
func (c *Cycloid) Span() float64 {
	return Revolution * c.Radius
}
