package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/sim"
)

type recordingRenderer struct {
	centers   []dynamo.Point
	markers   []dynamo.Point
	completed []int
}

func (r *recordingRenderer) SetCircleCenter(p dynamo.Point)   { r.centers = append(r.centers, p) }
func (r *recordingRenderer) SetMarkerPosition(p dynamo.Point) { r.markers = append(r.markers, p) }
func (r *recordingRenderer) Complete(pass int)                { r.completed = append(r.completed, pass) }

func unitPlan() *sim.Plan {
	plan, err := sim.NewPlan(dynamo.Params{Radius: 1, Velocity: 1}, sim.DefaultTiming())
	Expect(err).NotTo(HaveOccurred())
	return plan
}

func planAngles(plan *sim.Plan) []float64 {
	out := make([]float64, plan.FrameCount)
	for i := range out {
		out[i] = plan.Angle(i)
	}
	return out
}

var _ = Describe("Scheduler", func() {
	var s *sim.Scheduler

	BeforeEach(func() {
		s = sim.NewScheduler(unitPlan())
	})

	It("hands out every angle once, then stops", func() {
		var angles []float64
		for {
			t, ok := s.NextFrame()
			if !ok {
				break
			}
			angles = append(angles, t)
		}
		Expect(angles).To(HaveLen(31))
		Expect(angles).To(Equal(planAngles(s.Plan())))
		Expect(s.Done()).To(BeTrue())
		Expect(s.Passes()).To(Equal(1))

		_, ok := s.NextFrame()
		Expect(ok).To(BeFalse())
	})

	It("restarts from frame 0 after Reset", func() {
		for !s.Done() {
			s.NextFrame()
		}
		s.Reset()
		Expect(s.Index()).To(Equal(0))

		t, ok := s.NextFrame()
		Expect(ok).To(BeTrue())
		Expect(t).To(Equal(0.0))
	})

	It("forwards centre and marker positions in order", func() {
		r := &recordingRenderer{}
		var frames []dynamo.Frame
		for {
			f, ok := s.Step(r)
			if !ok {
				break
			}
			frames = append(frames, f)
		}

		Expect(r.centers).To(HaveLen(s.Len()))
		Expect(r.markers).To(HaveLen(s.Len()))

		first, last := frames[0], frames[len(frames)-1]
		Expect(first.Index).To(Equal(0))
		Expect(first.Point.X).To(BeNumerically("~", 0, 1e-12))
		Expect(first.Point.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(r.centers[0]).To(Equal(dynamo.Point{X: 0, Y: 1}))

		Expect(last.Index).To(Equal(30))
		Expect(last.Point.X).To(BeNumerically("~", 2*math.Pi, 1e-9))
		Expect(last.Point.Y).To(BeNumerically("~", 0, 1e-9))
		Expect(last.Time).To(BeNumerically("~", s.Plan().TotalTime, 1e-9))

		for i, f := range frames {
			Expect(f.Center.Y).To(Equal(1.0))
			Expect(f.Center.X).To(BeNumerically("~", f.Angle, 1e-12))
			Expect(f.Center.Dist(f.Point)).To(BeNumerically("~", 1, 1e-9))
			Expect(r.markers[i]).To(Equal(f.Point))
		}
	})

	It("computes frames without moving the cursor", func() {
		f := s.Frame(15)
		Expect(f.Index).To(Equal(15))
		Expect(f.Angle).To(BeNumerically("~", math.Pi, 1e-12))
		Expect(f.Point.Y).To(BeNumerically("~", 2, 1e-9))
		Expect(s.Index()).To(Equal(0))
	})
})
