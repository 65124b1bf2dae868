package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/cycloid/internal/dynamo"
)

type SweepPoint struct {
	Velocity float64
	Plan     *Plan
	Err      error
}

// Sweep derives plans for each velocity at a fixed radius. Work is split in
// contiguous chunks across workers; results keep the input order.
func Sweep(ctx context.Context, radius float64, velocities []float64, t Timing, workers int) ([]SweepPoint, error) {
	out := make([]SweepPoint, len(velocities))
	if len(velocities) == 0 {
		return out, nil
	}

	parallelFor(len(velocities), workers, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				out[i] = SweepPoint{Velocity: velocities[i], Err: ctx.Err()}
				continue
			}
			plan, err := NewPlan(dynamo.Params{Radius: radius, Velocity: velocities[i]}, t)
			out[i] = SweepPoint{Velocity: velocities[i], Plan: plan, Err: err}
		}
	})

	return out, ctx.Err()
}

func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
