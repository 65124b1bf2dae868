package metrics

import (
	"math"

	"github.com/san-kum/cycloid/internal/dynamo"
)

// RimError is the largest deviation of |centre − point| from the radius.
type RimError struct {
	name   string
	radius float64
	worst  float64
}

func NewRimError(radius float64) *RimError {
	return &RimError{name: "rim_error", radius: radius}
}

func (r *RimError) Name() string { return r.name }

func (r *RimError) Observe(f dynamo.Frame) {
	d := math.Abs(f.Center.Dist(f.Point) - r.radius)
	if d > r.worst {
		r.worst = d
	}
}

func (r *RimError) Value() float64 { return r.worst }

func (r *RimError) Reset() { r.worst = 0 }

// Defaults returns the metrics recorded for every saved run.
func Defaults(radius float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewMaxHeight(),
		NewPathLength(),
		NewRimError(radius),
	}
}
