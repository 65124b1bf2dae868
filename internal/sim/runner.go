package sim

import (
	"context"
	"time"
)

// Runner is a sleep-loop timing mechanism. Each frame's update and redraw
// complete before the next wait starts.
type Runner struct {
	// Redraw is called after every forwarded frame.
	Redraw func()
	// Sleep waits for d or until ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run drives s until its last pass ends or ctx is done. A nil Sleep waits
// in real time.
func (rn *Runner) Run(ctx context.Context, s *Scheduler, r Renderer) error {
	sleep := rn.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	timing := s.Plan().Timing

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, ok := s.Step(r); ok {
			if rn.Redraw != nil {
				rn.Redraw()
			}
			if !s.Done() {
				if err := sleep(ctx, timing.FrameInterval); err != nil {
					return err
				}
				continue
			}
		}

		if c, ok := r.(Completer); ok {
			c.Complete(s.Passes())
		}
		if err := sleep(ctx, timing.RepeatDelay); err != nil {
			return err
		}
		if !timing.Repeat {
			return nil
		}
		s.Reset()
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
