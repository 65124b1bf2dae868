package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/physics"
)

const (
	DefaultFrameInterval = 200 * time.Millisecond
	DefaultRepeatDelay   = 1000 * time.Millisecond

	// MaxFrameCount caps the derived frame count so it always fits an int.
	MaxFrameCount = math.MaxInt32
)

// Timing is the wall-clock side of a plan.
type Timing struct {
	FrameInterval time.Duration
	RepeatDelay   time.Duration
	Repeat        bool
}

func DefaultTiming() Timing {
	return Timing{
		FrameInterval: DefaultFrameInterval,
		RepeatDelay:   DefaultRepeatDelay,
		Repeat:        false,
	}
}

func (t Timing) Validate() error {
	if t.FrameInterval <= 0 {
		return &dynamo.ParameterError{Name: "frame_interval_ms", Value: msec(t.FrameInterval), Wrapped: dynamo.ErrParameterBounds}
	}
	if t.RepeatDelay < 0 {
		return &dynamo.ParameterError{Name: "repeat_delay_ms", Value: msec(t.RepeatDelay), Wrapped: dynamo.ErrParameterBounds}
	}
	return nil
}

// FramesPerSecond is 1000 / frame_interval_ms.
func (t Timing) FramesPerSecond() float64 {
	return float64(time.Second) / float64(t.FrameInterval)
}

// Plan is the discrete animation derived from the physical parameters.
type Plan struct {
	Params          dynamo.Params `json:"params"`
	Timing          Timing        `json:"-"`
	FramesPerSecond float64       `json:"frames_per_second"`
	Distance        float64       `json:"distance"`
	TotalTime       float64       `json:"total_time"`
	FrameCount      int           `json:"frame_count"`
}

// NewPlan derives the frame plan for one revolution. Frame counts below two
// degenerate to the pair [0, 2π].
func NewPlan(p dynamo.Params, t Timing) (*Plan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	fps := t.FramesPerSecond()
	distance := 2 * math.Pi * p.Radius
	total := distance / p.Velocity

	return &Plan{
		Params:          p,
		Timing:          t,
		FramesPerSecond: fps,
		Distance:        distance,
		TotalTime:       total,
		FrameCount:      frameCount(total * fps),
	}, nil
}

func frameCount(raw float64) int {
	n := math.Floor(raw)
	if math.IsNaN(n) || n < 2 {
		return 2
	}
	if n > MaxFrameCount {
		return MaxFrameCount
	}
	return int(n)
}

// Angle returns the rolling angle of frame i. The first frame is exactly 0
// and the last exactly 2π.
func (p *Plan) Angle(i int) float64 {
	last := p.FrameCount - 1
	switch {
	case i <= 0:
		return 0
	case i >= last:
		return physics.Revolution
	}
	return physics.Revolution * float64(i) / float64(last)
}

// SimTime is the simulated time at which the circle has rolled through angle.
func (p *Plan) SimTime(angle float64) float64 {
	return angle * p.Params.Radius / p.Params.Velocity
}

// Duration is the wall-clock length of one pass, without the repeat delay.
func (p *Plan) Duration() time.Duration {
	return time.Duration(p.FrameCount) * p.Timing.FrameInterval
}

func (p *Plan) String() string {
	return fmt.Sprintf("radius=%g velocity=%g fps=%g distance=%.3f total_time=%.3fs frames=%d",
		p.Params.Radius, p.Params.Velocity, p.FramesPerSecond, p.Distance, p.TotalTime, p.FrameCount)
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

func msec(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
