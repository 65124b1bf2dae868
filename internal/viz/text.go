package viz

import (
	"fmt"
	"io"

	"github.com/san-kum/cycloid/internal/dynamo"
)

// TextRenderer prints one line per frame. It is the renderer for terminals
// that cannot host the full view, driven by sim.Runner.
type TextRenderer struct {
	w      io.Writer
	center dynamo.Point
	marker dynamo.Point
	frame  int
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (t *TextRenderer) SetCircleCenter(p dynamo.Point)   { t.center = p }
func (t *TextRenderer) SetMarkerPosition(p dynamo.Point) { t.marker = p }

// Redraw writes the current frame.
func (t *TextRenderer) Redraw() {
	fmt.Fprintf(t.w, "%5d  center (%.3f, %.3f)  point (%.3f, %.3f)\n",
		t.frame, t.center.X, t.center.Y, t.marker.X, t.marker.Y)
	t.frame++
}

// Complete marks the end of a pass; frame numbering restarts.
func (t *TextRenderer) Complete(pass int) {
	fmt.Fprintf(t.w, "pass %d complete\n", pass)
	t.frame = 0
}
