package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/sim"
)

type countMetric struct {
	n int
}

func (c *countMetric) Name() string           { return "count" }
func (c *countMetric) Observe(f dynamo.Frame) { c.n++ }
func (c *countMetric) Value() float64         { return float64(c.n) }
func (c *countMetric) Reset()                 { c.n = 0 }

var _ = Describe("Simulate", func() {
	It("records one full pass and observes metrics", func() {
		m := &countMetric{n: 99}
		result, err := sim.Simulate(context.Background(), unitPlan(), 0, m)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Frames).To(HaveLen(31))
		Expect(result.Metrics).To(HaveKeyWithValue("count", 31.0))

		last := result.Frames[30]
		Expect(last.Angle).To(Equal(2 * math.Pi))
		Expect(last.Point.X).To(BeNumerically("~", 2*math.Pi, 1e-9))
	})

	It("refuses plans above the frame limit", func() {
		_, err := sim.Simulate(context.Background(), unitPlan(), 10)
		Expect(err).To(MatchError(dynamo.ErrTooManyFrames))
	})

	It("honours cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sim.Simulate(ctx, unitPlan(), 0)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Sweep", func() {
	It("keeps input order and shrinks the frame count with velocity", func() {
		velocities := sim.Linspace(0.5, 8, 16)
		points, err := sim.Sweep(context.Background(), 1, velocities, sim.DefaultTiming(), 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(16))

		for i, p := range points {
			Expect(p.Err).NotTo(HaveOccurred())
			Expect(p.Velocity).To(Equal(velocities[i]))
			if i > 0 {
				Expect(p.Plan.FrameCount).To(BeNumerically("<=", points[i-1].Plan.FrameCount))
			}
		}
		Expect(points[0].Plan.FrameCount).To(BeNumerically(">", points[15].Plan.FrameCount))
	})

	It("reports invalid velocities per point", func() {
		points, err := sim.Sweep(context.Background(), 1, []float64{1, 0, 2}, sim.DefaultTiming(), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(points[1].Err).To(MatchError(dynamo.ErrParameterBounds))
		Expect(points[0].Plan.FrameCount).To(Equal(31))
	})

	It("returns the context error when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		points, err := sim.Sweep(ctx, 1, []float64{1, 2}, sim.DefaultTiming(), 2)
		Expect(err).To(MatchError(context.Canceled))
		Expect(points[0].Plan).To(BeNil())
	})
})
