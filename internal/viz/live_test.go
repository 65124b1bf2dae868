package viz

import (
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/sim"
)

func newPlan(t *testing.T, timing sim.Timing) *sim.Plan {
	t.Helper()
	plan, err := sim.NewPlan(dynamo.Params{Radius: 1, Velocity: 1}, timing)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	return plan
}

func tickAll(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < m.sched.Len(); i++ {
		next, cmd := m.Update(TickMsg{})
		m = next.(Model)
		if cmd == nil {
			t.Fatalf("tick %d returned no command", i)
		}
		if m.Frame().Index != i {
			t.Fatalf("tick %d showed frame %d", i, m.Frame().Index)
		}
	}
	return m
}

func TestModelSinglePass(t *testing.T) {
	m := NewModel(newPlan(t, sim.DefaultTiming()), Options{Cols: 40})

	if msg := m.Init()(); msg == nil {
		t.Fatal("Init should produce a tick")
	} else if _, ok := msg.(TickMsg); !ok {
		t.Fatalf("Init produced %T, want TickMsg", msg)
	}

	m = tickAll(t, m)
	if !m.sched.Done() {
		t.Fatal("scheduler should be exhausted after every tick")
	}
	if m.status() != "FINISHED" {
		t.Errorf("status %q, want FINISHED", m.status())
	}

	next, cmd := m.Update(repeatMsg{})
	m = next.(Model)
	if cmd != nil {
		t.Error("single pass should not schedule more work")
	}
	if !m.Done() {
		t.Error("expected model done")
	}

	view := m.View()
	for _, want := range []string{Title, "DONE", "31/31"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewTitleOnOneLine(t *testing.T) {
	for _, cols := range []int{20, 40, defaultCols} {
		m := NewModel(newPlan(t, sim.DefaultTiming()), Options{Cols: cols})
		found := false
		for _, line := range strings.Split(m.View(), "\n") {
			if strings.Contains(line, Title) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("cols=%d: title wrapped or missing", cols)
		}
	}
}

func TestModelRepeat(t *testing.T) {
	timing := sim.DefaultTiming()
	timing.Repeat = true
	m := NewModel(newPlan(t, timing), Options{Cols: 40})

	m = tickAll(t, m)
	next, cmd := m.Update(repeatMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("repeat should schedule the next pass")
	}
	if m.Done() || m.sched.Index() != 0 {
		t.Error("repeat should restart from frame 0")
	}
	if m.heights.Len() != 0 {
		t.Error("height history not cleared on restart")
	}

	next, _ = m.Update(TickMsg{})
	if got := next.(Model).Frame().Angle; got != 0 {
		t.Errorf("first frame of second pass at angle %v", got)
	}
}

func TestModelExitWhenDone(t *testing.T) {
	m := NewModel(newPlan(t, sim.DefaultTiming()), Options{Cols: 40, ExitWhenDone: true})
	m = tickAll(t, m)

	_, cmd := m.Update(repeatMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(newPlan(t, sim.DefaultTiming()), Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelHeightHistory(t *testing.T) {
	m := NewModel(newPlan(t, sim.DefaultTiming()), Options{Cols: 40})
	m = tickAll(t, m)

	if m.heights.Len() != 31 {
		t.Fatalf("expected 31 heights, got %d", m.heights.Len())
	}
	if m.heights.At(15) <= m.heights.At(0) {
		t.Error("mid-pass height should exceed the start")
	}

	for i := 0; i < historyCapacity*2; i++ {
		m.pushHeight(float64(i))
	}
	if m.heights.Len() != historyCapacity {
		t.Errorf("history grew to %d", m.heights.Len())
	}
}

func TestModelRecordsGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.gif")
	m := NewModel(newPlan(t, sim.DefaultTiming()), Options{Cols: 30, GIFPath: path, Theme: ThemeOcean})

	m = tickAll(t, m)
	next, _ := m.Update(repeatMsg{})
	m = next.(Model)
	if m.Err() != nil {
		t.Fatalf("recording failed: %v", m.Err())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("invalid gif: %v", err)
	}
	if len(anim.Image) != 31 {
		t.Errorf("expected 31 frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 20 {
		t.Errorf("expected 20cs frame delay, got %d", anim.Delay[0])
	}
	if anim.Delay[30] != 120 {
		t.Errorf("expected final frame held 120cs, got %d", anim.Delay[30])
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		th, ok := GetTheme(name)
		if !ok || th.Name != name {
			t.Errorf("GetTheme(%q) = %q, %v", name, th.Name, ok)
		}
		if len(th.Palette()) != int(InkMarker)+1 {
			t.Errorf("%s palette has %d colours", name, len(th.Palette()))
		}
	}
	if th, ok := GetTheme("nope"); ok || th.Name != ThemeClassic.Name {
		t.Error("unknown theme should fall back to classic")
	}
}
