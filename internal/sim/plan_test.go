package sim_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/sim"
)

var _ = Describe("Plan", func() {
	It("derives the unit plan", func() {
		plan, err := sim.NewPlan(dynamo.Params{Radius: 1, Velocity: 1}, sim.DefaultTiming())
		Expect(err).NotTo(HaveOccurred())

		Expect(plan.FramesPerSecond).To(Equal(5.0))
		Expect(plan.Distance).To(BeNumerically("~", 2*math.Pi, 1e-12))
		Expect(plan.TotalTime).To(BeNumerically("~", 6.283, 1e-3))
		Expect(plan.FrameCount).To(Equal(31))
		Expect(plan.Duration()).To(Equal(31 * 200 * time.Millisecond))
	})

	It("scales the frame count with radius and frame rate", func() {
		plan, err := sim.NewPlan(dynamo.Params{Radius: 2.5, Velocity: 1}, sim.DefaultTiming())
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.FrameCount).To(Equal(int(math.Floor(2 * math.Pi * 2.5 * 5))))

		fast := sim.Timing{FrameInterval: 50 * time.Millisecond}
		plan, err = sim.NewPlan(dynamo.Params{Radius: 1, Velocity: 1}, fast)
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.FramesPerSecond).To(Equal(20.0))
		Expect(plan.FrameCount).To(Equal(125))
	})

	DescribeTable("degenerates to two frames",
		func(radius, velocity float64) {
			plan, err := sim.NewPlan(dynamo.Params{Radius: radius, Velocity: velocity}, sim.DefaultTiming())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.FrameCount).To(Equal(2))
			Expect(planAngles(plan)).To(Equal([]float64{0, 2 * math.Pi}))
		},
		Entry("very high velocity", 1.0, 1000.0),
		Entry("very small radius", 0.001, 1.0),
		Entry("exactly one frame", 1.0, 2*math.Pi*5),
	)

	DescribeTable("rejects invalid parameters",
		func(p dynamo.Params, t sim.Timing, field string) {
			_, err := sim.NewPlan(p, t)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))

			var pe *dynamo.ParameterError
			Expect(err).To(BeAssignableToTypeOf(pe))
			Expect(err.(*dynamo.ParameterError).Name).To(Equal(field))
		},
		Entry("zero radius", dynamo.Params{Radius: 0, Velocity: 1}, sim.DefaultTiming(), "radius"),
		Entry("zero velocity", dynamo.Params{Radius: 1, Velocity: 0}, sim.DefaultTiming(), "velocity"),
		Entry("negative velocity", dynamo.Params{Radius: 1, Velocity: -3}, sim.DefaultTiming(), "velocity"),
		Entry("zero interval", dynamo.Params{Radius: 1, Velocity: 1}, sim.Timing{}, "frame_interval_ms"),
		Entry("negative repeat delay", dynamo.Params{Radius: 1, Velocity: 1},
			sim.Timing{FrameInterval: time.Millisecond, RepeatDelay: -time.Second}, "repeat_delay_ms"),
	)

	It("produces a non-decreasing sequence from 0 to 2π", func() {
		for _, p := range []dynamo.Params{{Radius: 1, Velocity: 1}, {Radius: 3, Velocity: 0.7}, {Radius: 0.2, Velocity: 9}} {
			plan, err := sim.NewPlan(p, sim.DefaultTiming())
			Expect(err).NotTo(HaveOccurred())

			angles := planAngles(plan)
			Expect(len(angles)).To(BeNumerically(">=", 2))
			Expect(angles[0]).To(Equal(0.0))
			Expect(angles[len(angles)-1]).To(Equal(2 * math.Pi))
			for i := 1; i < len(angles); i++ {
				Expect(angles[i]).To(BeNumerically(">=", angles[i-1]))
			}
		}
	})

	It("uses fewer frames as velocity grows", func() {
		prev := math.MaxInt
		for _, v := range []float64{0.25, 0.5, 1, 2, 4} {
			plan, err := sim.NewPlan(dynamo.Params{Radius: 1, Velocity: v}, sim.DefaultTiming())
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.FrameCount).To(BeNumerically("<", prev))
			prev = plan.FrameCount
		}
	})

	It("caps enormous plans", func() {
		plan, err := sim.NewPlan(dynamo.Params{Radius: 1e12, Velocity: 1e-6}, sim.DefaultTiming())
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.FrameCount).To(Equal(sim.MaxFrameCount))
		Expect(plan.Angle(plan.FrameCount - 1)).To(Equal(2 * math.Pi))
	})

	It("maps angles to simulated time", func() {
		plan, err := sim.NewPlan(dynamo.Params{Radius: 2, Velocity: 4}, sim.DefaultTiming())
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.SimTime(2 * math.Pi)).To(BeNumerically("~", plan.TotalTime, 1e-12))
		Expect(plan.SimTime(0)).To(Equal(0.0))
	})
})

var _ = Describe("Linspace", func() {
	It("includes both ends", func() {
		Expect(sim.Linspace(1, 3, 5)).To(Equal([]float64{1, 1.5, 2, 2.5, 3}))
		Expect(sim.Linspace(4, 9, 1)).To(Equal([]float64{4}))
		Expect(sim.Linspace(0, 1, 0)).To(BeNil())
	})
})
