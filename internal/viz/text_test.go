package viz

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/cycloid/internal/sim"
)

func TestTextRendererWithRunner(t *testing.T) {
	plan := newPlan(t, sim.DefaultTiming())
	var out strings.Builder
	tr := NewTextRenderer(&out)

	var slept []time.Duration
	rn := &sim.Runner{
		Redraw: tr.Redraw,
		Sleep: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}
	if err := rn.Run(context.Background(), sim.NewScheduler(plan), tr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 32 {
		t.Fatalf("expected 31 frames and a completion line, got %d lines", len(lines))
	}
	if want := "    0  center (0.000, 1.000)  point (0.000, 0.000)"; lines[0] != want {
		t.Errorf("first line %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[30], "   30  center (6.283, 1.000)  point (6.283, ") {
		t.Errorf("last frame line %q", lines[30])
	}
	if lines[31] != "pass 1 complete" {
		t.Errorf("completion line %q", lines[31])
	}
	if len(slept) != 31 || slept[30] != time.Second {
		t.Errorf("unexpected sleeps: %d, last %v", len(slept), slept[len(slept)-1])
	}
}
