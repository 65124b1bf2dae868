package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(3, 5, InkCurve)
	if !c.Dot(3, 5) {
		t.Fatal("expected dot (3,5) lit")
	}
	if c.Dot(2, 5) {
		t.Error("neighbouring dot lit")
	}
	if got := c.Grid[1][1]; got != 0x2800|0x10 {
		t.Errorf("unexpected braille rune %U", got)
	}

	c.Set(2, 4, InkGrid)
	if c.InkAt(3, 5) != InkCurve {
		t.Error("lower ink replaced higher ink")
	}
	c.Set(2, 4, InkMarker)
	if c.InkAt(3, 5) != InkMarker {
		t.Error("higher ink not applied")
	}

	c.Set(-1, 0, InkCurve)
	c.Set(100, 100, InkCurve)

	c.Clear()
	if c.Dot(3, 5) || c.InkAt(3, 5) != InkNone {
		t.Error("clear left state behind")
	}
}

func TestCanvasLines(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 11, InkCurve)
	if !c.Dot(0, 0) || !c.Dot(19, 11) {
		t.Error("line endpoints not drawn")
	}

	c.Clear()
	c.DrawDashedLine(0, 0, 19, 0, 3, 2, InkAxis)
	for x := 0; x < 20; x++ {
		want := x%5 < 3
		if c.Dot(x, 0) != want {
			t.Errorf("dash at x=%d: got %v want %v", x, c.Dot(x, 0), want)
		}
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 6, InkCircle)

	for _, p := range [][2]int{{16, 10}, {4, 10}, {10, 16}, {10, 4}} {
		if !c.Dot(p[0], p[1]) {
			t.Errorf("expected circle dot at %v", p)
		}
	}
	if c.Dot(10, 10) {
		t.Error("circle outline filled its centre")
	}

	c.Clear()
	c.FillDot(10, 10, 1, InkMarker)
	for _, p := range [][2]int{{10, 10}, {9, 10}, {11, 10}, {10, 9}, {10, 11}} {
		if !c.Dot(p[0], p[1]) {
			t.Errorf("expected marker dot at %v", p)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(5, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 5 {
			t.Errorf("expected 5 cells per line, got %d", n)
		}
	}

	c.Set(0, 0, InkCurve)
	out := c.Render(func(Ink) lipgloss.Style { return lipgloss.NewStyle() })
	if !strings.ContainsRune(out, 0x2801) {
		t.Error("rendered output lost the lit cell")
	}
}
