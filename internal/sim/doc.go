// Package sim turns a radius and a rolling velocity into a timed animation.
//
//   - [Plan]: frame rate, rolled distance, simulated duration and frame count
//   - [Scheduler]: restartable, finite, lazy sequence of rolling angles
//   - [Renderer]: capability the scheduler forwards positions to
//   - [Runner]: sleep-loop driver honouring the frame interval and repeat policy
//   - [Simulate]: headless pass recording every frame
//   - [Sweep]: frame plans for several velocities, computed in parallel
//
// # Example
//
//	plan, err := sim.NewPlan(dynamo.Params{Radius: 1, Velocity: 1}, sim.DefaultTiming())
//	if err != nil {
//	    return err
//	}
//	err = (&sim.Runner{}).Run(ctx, sim.NewScheduler(plan), renderer)
//
// # Thread Safety
//
// A Scheduler is owned by one timing loop. Only that loop advances the
// cursor, and frames never overlap.
package sim
