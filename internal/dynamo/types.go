package dynamo

import (
	"math"
)

// Point is a position in the plot plane. Y grows upwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Params are the two user inputs of a run.
type Params struct {
	Radius   float64 `json:"radius"`
	Velocity float64 `json:"velocity"`
}

// Validate rejects non-positive or non-finite values.
func (p Params) Validate() error {
	if err := CheckPositive("radius", p.Radius); err != nil {
		return err
	}
	return CheckPositive("velocity", p.Velocity)
}

// CheckPositive returns a *ParameterError unless v is finite and > 0.
func CheckPositive(name string, v float64) error {
	if !isFinite(v) || v <= 0 {
		return &ParameterError{Name: name, Value: v, Wrapped: ErrParameterBounds}
	}
	return nil
}

// Frame is the state forwarded to a renderer for one scheduled step.
type Frame struct {
	Index  int     `json:"index"`
	Angle  float64 `json:"angle"`
	Time   float64 `json:"time"`
	Center Point   `json:"center"`
	Point  Point   `json:"point"`
}

// Metric observes frames of a headless run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
