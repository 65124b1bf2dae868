package sim_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/sim"
)

var _ = Describe("Runner", func() {
	var (
		r      *recordingRenderer
		sleeps []time.Duration
		draws  int
		runner *sim.Runner
	)

	BeforeEach(func() {
		r = &recordingRenderer{}
		sleeps = nil
		draws = 0
		runner = &sim.Runner{
			Redraw: func() { draws++ },
			Sleep: func(ctx context.Context, d time.Duration) error {
				sleeps = append(sleeps, d)
				return ctx.Err()
			},
		}
	})

	It("runs a single pass, then waits the repeat delay and stops", func() {
		s := sim.NewScheduler(unitPlan())
		Expect(runner.Run(context.Background(), s, r)).To(Succeed())

		Expect(r.centers).To(HaveLen(31))
		Expect(draws).To(Equal(31))
		Expect(r.completed).To(Equal([]int{1}))

		Expect(sleeps).To(HaveLen(31))
		for _, d := range sleeps[:30] {
			Expect(d).To(Equal(sim.DefaultFrameInterval))
		}
		Expect(sleeps[30]).To(Equal(sim.DefaultRepeatDelay))
	})

	It("restarts when repeat is enabled", func() {
		timing := sim.DefaultTiming()
		timing.Repeat = true
		plan, err := sim.NewPlan(dynamo.Params{Radius: 1, Velocity: 100}, timing)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		runner.Sleep = func(ctx context.Context, d time.Duration) error {
			if d == sim.DefaultRepeatDelay && len(r.completed) == 3 {
				cancel()
			}
			return ctx.Err()
		}

		err = runner.Run(ctx, sim.NewScheduler(plan), r)
		Expect(err).To(MatchError(context.Canceled))
		Expect(r.completed).To(Equal([]int{1, 2, 3}))
		Expect(r.centers).To(HaveLen(6))
		Expect(r.centers[2].X).To(Equal(0.0))
	})

	It("stops as soon as the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		runner.Sleep = func(ctx context.Context, d time.Duration) error {
			if len(r.centers) == 5 {
				cancel()
			}
			return ctx.Err()
		}

		err := runner.Run(ctx, sim.NewScheduler(unitPlan()), r)
		Expect(err).To(MatchError(context.Canceled))
		Expect(r.centers).To(HaveLen(5))
		Expect(r.completed).To(BeEmpty())
	})

	It("waits real time with the default sleeper", func() {
		timing := sim.Timing{FrameInterval: time.Millisecond, RepeatDelay: time.Millisecond}
		plan, err := sim.NewPlan(dynamo.Params{Radius: 1, Velocity: 1000}, timing)
		Expect(err).NotTo(HaveOccurred())

		start := time.Now()
		Expect((&sim.Runner{}).Run(context.Background(), sim.NewScheduler(plan), r)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically(">=", time.Duration(plan.FrameCount)*time.Millisecond))
		Expect(r.markers).To(HaveLen(plan.FrameCount))
	})
})
