package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/cycloid/internal/dynamo"
)

// DefaultMaxFrames bounds headless runs.
const DefaultMaxFrames = 1_000_000

type Result struct {
	Plan    *Plan              `json:"plan"`
	Frames  []dynamo.Frame     `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

// Simulate computes one full pass without wall-clock delays. maxFrames <= 0
// means DefaultMaxFrames.
func Simulate(ctx context.Context, plan *Plan, maxFrames int, metrics ...dynamo.Metric) (*Result, error) {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	if plan.FrameCount > maxFrames {
		return nil, fmt.Errorf("%d frames, limit %d: %w", plan.FrameCount, maxFrames, dynamo.ErrTooManyFrames)
	}

	for _, m := range metrics {
		m.Reset()
	}

	s := NewScheduler(plan)
	result := &Result{
		Plan:    plan,
		Frames:  make([]dynamo.Frame, 0, plan.FrameCount),
		Metrics: make(map[string]float64, len(metrics)),
	}

	for {
		if len(result.Frames)%1024 == 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
		}

		f, ok := s.Next()
		if !ok {
			break
		}
		if !f.Point.IsValid() || !f.Center.IsValid() {
			return result, fmt.Errorf("frame %d: %w", f.Index, dynamo.ErrInvalidState)
		}
		for _, m := range metrics {
			m.Observe(f)
		}
		result.Frames = append(result.Frames, f)
	}

	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
