package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gammazero/deque"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/physics"
	"github.com/san-kum/cycloid/internal/sim"
)

const (
	defaultCols     = 72
	historyCapacity = 64
)

// TickMsg asks for the next frame.
type TickMsg time.Time

// repeatMsg fires once the repeat delay after a pass has elapsed.
type repeatMsg struct{}

type Options struct {
	Cols         int
	CurveSamples int
	Theme        Theme
	// GIFPath records the first pass to a GIF when set.
	GIFPath string
	// ExitWhenDone quits after the repeat delay instead of keeping the final
	// frame on screen. Ignored when the plan repeats.
	ExitWhenDone bool
}

// Model is the bubbletea program for one animation. Frames advance only on
// ticks, one frame per tick.
type Model struct {
	sched    *sim.Scheduler
	scene    *Scene
	canvas   *Canvas
	styles   styles
	opts     Options
	frame    dynamo.Frame
	heights  *deque.Deque[float64]
	recorder *Recorder
	started  bool
	done     bool
	err      error
}

func NewModel(plan *sim.Plan, opts Options) Model {
	if opts.Cols <= 0 {
		opts.Cols = defaultCols
	}
	if opts.CurveSamples < 2 {
		opts.CurveSamples = physics.DefaultCurveSamples
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeClassic
	}

	sched := sim.NewScheduler(plan)
	scene := NewScene(plan.Params.Radius, sched.Model().Curve(opts.CurveSamples), opts.Cols)

	m := Model{
		sched:   sched,
		scene:   scene,
		canvas:  scene.NewCanvas(),
		styles:  newStyles(opts.Theme),
		opts:    opts,
		heights: &deque.Deque[float64]{},
	}
	if opts.GIFPath != "" {
		m.recorder = NewRecorder(opts.Theme)
	}
	scene.Draw(m.canvas)
	return m
}

// Init shows frame 0 straight away.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return TickMsg(time.Now()) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case TickMsg:
		return m.advance()
	case repeatMsg:
		return m.finishPass()
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	timing := m.sched.Plan().Timing

	f, ok := m.sched.Step(m.scene)
	if ok {
		m.frame = f
		m.started = true
		m.pushHeight(f.Point.Y)
		m.scene.Draw(m.canvas)
		if m.recorder != nil {
			m.recorder.Capture(m.canvas, timing.FrameInterval)
		}
	}

	if !m.sched.Done() {
		return m, tick(timing.FrameInterval)
	}
	return m, tea.Tick(timing.RepeatDelay, func(time.Time) tea.Msg { return repeatMsg{} })
}

func (m Model) finishPass() (tea.Model, tea.Cmd) {
	timing := m.sched.Plan().Timing

	if m.recorder != nil {
		m.recorder.Hold(timing.RepeatDelay)
		if err := m.recorder.Save(m.opts.GIFPath, timing.Repeat); err != nil {
			m.err = fmt.Errorf("save gif: %w", err)
		}
		m.recorder = nil
	}

	if timing.Repeat {
		m.sched.Reset()
		m.heights.Clear()
		return m, tick(0)
	}

	m.done = true
	if m.opts.ExitWhenDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) pushHeight(y float64) {
	m.heights.PushBack(y)
	for m.heights.Len() > historyCapacity {
		m.heights.PopFront()
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Frame is the last frame shown.
func (m Model) Frame() dynamo.Frame { return m.frame }

// Done reports whether a non-repeating animation has finished.
func (m Model) Done() bool { return m.done }

// Err is the first error met while recording.
func (m Model) Err() error { return m.err }

func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.canvas.Render(m.styles.ink))

	plan := m.sched.Plan()
	var s strings.Builder
	s.WriteString(m.styles.status.Render(m.status()) + "\n\n")

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Radius", fmt.Sprintf("%g", plan.Params.Radius))
	row("Velocity", fmt.Sprintf("%g", plan.Params.Velocity))
	row("Frame", fmt.Sprintf("%d/%d", m.sched.Index(), plan.FrameCount))
	row("Angle", fmt.Sprintf("%.3f rad", m.frame.Angle))
	row("Time", fmt.Sprintf("%.2fs / %.2fs", m.frame.Time, plan.TotalTime))
	row("Center", fmt.Sprintf("(%.2f, %.2f)", m.frame.Center.X, m.frame.Center.Y))
	row("Point", fmt.Sprintf("(%.2f, %.2f)", m.frame.Point.X, m.frame.Point.Y))
	row("Speed", fmt.Sprintf("%.2f", physics.PointSpeed(m.frame.Angle, plan.Params.Velocity)))

	progress := float64(m.sched.Index()) / float64(plan.FrameCount)
	s.WriteString("\n" + progressBar(progress, 30) + "\n")

	if m.heights.Len() > 1 {
		data := make([]float64, m.heights.Len())
		for i := range data {
			data[i] = m.heights.At(i)
		}
		chart := asciigraph.Plot(data, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("height"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(m.styles.value.Render(m.err.Error()) + "\n")
	}
	s.WriteString(m.styles.help.Render("Q: Quit"))

	// The title spans the whole view; the stats panel is too narrow for it.
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(s.String()))
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.header.Render(Title), body)
}

func (m Model) status() string {
	switch {
	case m.done:
		return "DONE"
	case m.sched.Done():
		if m.sched.Plan().Timing.Repeat {
			return "RESTARTING"
		}
		return "FINISHED"
	case !m.started:
		return "READY"
	}
	return "ROLLING"
}

// Run starts the bubbletea program and blocks until the user quits or ctx
// is done.
func Run(ctx context.Context, plan *sim.Plan, opts Options) error {
	p := tea.NewProgram(NewModel(plan, opts), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
