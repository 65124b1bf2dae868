// Package dynamo provides the value types shared by the rolling-circle
// motion model, the frame scheduler and the renderers:
//
//   - [Point]: a position in the plot plane
//   - [Params]: circle radius and rolling velocity
//   - [Frame]: one scheduled animation step
//   - [Metric]: per-frame observer used by headless runs
//
// # Example
//
//	p := dynamo.Params{Radius: 1, Velocity: 1}
//	if err := p.Validate(); err != nil {
//	    return err
//	}
//
// All types are plain values. Nothing here holds mutable shared state.
package dynamo
