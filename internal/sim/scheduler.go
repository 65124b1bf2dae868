package sim

import (
	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/physics"
)

// Renderer receives the moving parts of a frame. The static curve is drawn
// once by the renderer itself and never forwarded.
type Renderer interface {
	// SetCircleCenter moves the circle outline and the centre marker.
	SetCircleCenter(p dynamo.Point)
	// SetMarkerPosition moves the traced-point marker.
	SetMarkerPosition(p dynamo.Point)
}

// Completer is implemented by renderers that want to know when a pass ends.
type Completer interface {
	Complete(pass int)
}

// Scheduler walks a Plan one frame at a time.
type Scheduler struct {
	plan   *Plan
	model  *physics.Cycloid
	cursor int
	passes int
}

func NewScheduler(plan *Plan) *Scheduler {
	return &Scheduler{
		plan:  plan,
		model: physics.NewCycloid(plan.Params.Radius),
	}
}

// NextFrame returns the next rolling angle, or false once the sequence is
// exhausted. Call Reset to start over.
func (s *Scheduler) NextFrame() (float64, bool) {
	if s.cursor >= s.plan.FrameCount {
		return 0, false
	}
	t := s.plan.Angle(s.cursor)
	s.cursor++
	if s.cursor == s.plan.FrameCount {
		s.passes++
	}
	return t, true
}

// Next advances the cursor and returns the full frame.
func (s *Scheduler) Next() (dynamo.Frame, bool) {
	idx := s.cursor
	if _, ok := s.NextFrame(); !ok {
		return dynamo.Frame{}, false
	}
	return s.Frame(idx), true
}

// Step advances one frame and forwards it to r.
func (s *Scheduler) Step(r Renderer) (dynamo.Frame, bool) {
	f, ok := s.Next()
	if !ok {
		return f, false
	}
	r.SetCircleCenter(f.Center)
	r.SetMarkerPosition(f.Point)
	return f, true
}

// Frame computes frame i without moving the cursor.
func (s *Scheduler) Frame(i int) dynamo.Frame {
	t := s.plan.Angle(i)
	return dynamo.Frame{
		Index:  i,
		Angle:  t,
		Time:   s.plan.SimTime(t),
		Center: s.model.Center(t),
		Point:  s.model.Position(t),
	}
}

func (s *Scheduler) Reset() {
	s.cursor = 0
}

// Done reports whether every frame of the current pass has been handed out.
func (s *Scheduler) Done() bool {
	return s.cursor >= s.plan.FrameCount
}

// Index is the number of frames handed out in the current pass.
func (s *Scheduler) Index() int {
	return s.cursor
}

// Passes counts completed passes.
func (s *Scheduler) Passes() int {
	return s.passes
}

func (s *Scheduler) Len() int {
	return s.plan.FrameCount
}

func (s *Scheduler) Plan() *Plan {
	return s.plan
}

func (s *Scheduler) Model() *physics.Cycloid {
	return s.model
}
