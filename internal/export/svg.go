package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/physics"
	"github.com/san-kum/cycloid/internal/sim"
	"github.com/san-kum/cycloid/internal/viz"
)

const (
	background  = "#0a0a0a"
	titleHeight = 32

	// MaxAnimatedFrames bounds the number of keyframes in an animated SVG.
	MaxAnimatedFrames = 20000
)

type Options struct {
	Width        int
	CurveSamples int
	Theme        viz.Theme
}

func DefaultOptions() Options {
	return Options{
		Width:        800,
		CurveSamples: physics.DefaultCurveSamples,
		Theme:        viz.ThemeClassic,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.CurveSamples < 2 {
		o.CurveSamples = def.CurveSamples
	}
	if o.Theme.Name == "" {
		o.Theme = def.Theme
	}
	return o
}

// projection maps plot coordinates to SVG user units below the title band.
type projection struct {
	xmin, xmax, ymin, ymax float64
	scale                  float64
	width, height          float64
}

func newProjection(a float64, width int) projection {
	xmin, xmax, ymin, ymax := viz.PlotBounds(a)
	scale := float64(width) / (xmax - xmin)
	return projection{
		xmin: xmin, xmax: xmax,
		ymin: ymin, ymax: ymax,
		scale:  scale,
		width:  float64(width),
		height: (ymax-ymin)*scale + titleHeight,
	}
}

func (p projection) x(v float64) float64 { return (v - p.xmin) * p.scale }
func (p projection) y(v float64) float64 { return titleHeight + (p.ymax-v)*p.scale }

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FrameSVG draws the plot as it looks while frame f is shown.
func FrameSVG(plan *sim.Plan, f dynamo.Frame, opts Options) string {
	opts = opts.withDefaults()
	a := plan.Params.Radius
	pr := newProjection(a, opts.Width)
	th := opts.Theme

	var sb strings.Builder
	writeBackdrop(&sb, pr, a, opts)

	cx, cy := coord(pr.x(f.Center.X)), coord(pr.y(f.Center.Y))
	px, py := coord(pr.x(f.Point.X)), coord(pr.y(f.Point.Y))
	fmt.Fprintf(&sb, `<circle id="circle" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		cx, cy, coord(a*pr.scale), th.Circle)
	fmt.Fprintf(&sb, `<circle id="center" cx="%s" cy="%s" r="4" fill="%s"/>`+"\n", cx, cy, th.Center)
	fmt.Fprintf(&sb, `<circle id="marker" cx="%s" cy="%s" r="5" fill="%s"/>`+"\n", px, py, th.Marker)

	sb.WriteString("</svg>\n")
	return sb.String()
}

// AnimatedSVG plays every frame of the plan with SMIL animations. Each frame
// is held for one frame interval; a repeating plan also holds the last frame
// for the repeat delay before looping.
func AnimatedSVG(plan *sim.Plan, opts Options) (string, error) {
	n := plan.FrameCount
	if n > MaxAnimatedFrames {
		return "", fmt.Errorf("%d frames, limit %d: %w", n, MaxAnimatedFrames, dynamo.ErrTooManyFrames)
	}

	opts = opts.withDefaults()
	a := plan.Params.Radius
	pr := newProjection(a, opts.Width)
	th := opts.Theme
	sched := sim.NewScheduler(plan)

	centerX := make([]string, n)
	markerX := make([]string, n)
	markerY := make([]string, n)
	for i := 0; i < n; i++ {
		f := sched.Frame(i)
		centerX[i] = coord(pr.x(f.Center.X))
		markerX[i] = coord(pr.x(f.Point.X))
		markerY[i] = coord(pr.y(f.Point.Y))
	}
	tl := newTimeline(plan)

	var sb strings.Builder
	writeBackdrop(&sb, pr, a, opts)

	cy := coord(pr.y(a))
	fmt.Fprintf(&sb, `<circle id="circle" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="2">`+"\n",
		centerX[0], cy, coord(a*pr.scale), th.Circle)
	sb.WriteString(tl.animate("cx", centerX))
	sb.WriteString("</circle>\n")

	fmt.Fprintf(&sb, `<circle id="center" cx="%s" cy="%s" r="4" fill="%s">`+"\n", centerX[0], cy, th.Center)
	sb.WriteString(tl.animate("cx", centerX))
	sb.WriteString("</circle>\n")

	fmt.Fprintf(&sb, `<circle id="marker" cx="%s" cy="%s" r="5" fill="%s">`+"\n", markerX[0], markerY[0], th.Marker)
	sb.WriteString(tl.animate("cx", markerX))
	sb.WriteString(tl.animate("cy", markerY))
	sb.WriteString("</circle>\n")

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

type timeline struct {
	dur      string
	keyTimes string
	repeat   string
}

func newTimeline(plan *sim.Plan) timeline {
	t := plan.Timing
	total := time.Duration(plan.FrameCount) * t.FrameInterval
	repeat := "1"
	if t.Repeat {
		total += t.RepeatDelay
		repeat = "indefinite"
	}

	keys := make([]string, plan.FrameCount)
	for i := range keys {
		at := float64(time.Duration(i)*t.FrameInterval) / float64(total)
		keys[i] = strconv.FormatFloat(at, 'f', 6, 64)
	}
	return timeline{
		dur:      strconv.FormatFloat(total.Seconds(), 'g', -1, 64) + "s",
		keyTimes: strings.Join(keys, ";"),
		repeat:   repeat,
	}
}

func (tl timeline) animate(attr string, values []string) string {
	return fmt.Sprintf(`<animate attributeName="%s" calcMode="discrete" dur="%s" keyTimes="%s" values="%s" repeatCount="%s" fill="freeze"/>`+"\n",
		attr, tl.dur, tl.keyTimes, strings.Join(values, ";"), tl.repeat)
}

// writeBackdrop opens the document and draws everything that never moves:
// grid, dashed axes, the curve and the title.
func writeBackdrop(sb *strings.Builder, pr projection, a float64, opts Options) {
	th := opts.Theme
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, pr.width, pr.height, pr.width, pr.height, background)

	step := viz.NiceStep((pr.xmax - pr.xmin) / 10)
	fmt.Fprintf(sb, `<g id="grid" stroke="%s" stroke-width="0.5">`+"\n", th.Grid)
	for x := math.Ceil(pr.xmin/step) * step; x <= pr.xmax; x += step {
		fmt.Fprintf(sb, `<line x1="%s" y1="%d" x2="%s" y2="%s"/>`+"\n",
			coord(pr.x(x)), titleHeight, coord(pr.x(x)), coord(pr.height))
	}
	for y := math.Ceil(pr.ymin/step) * step; y <= pr.ymax; y += step {
		fmt.Fprintf(sb, `<line x1="0" y1="%s" x2="%s" y2="%s"/>`+"\n",
			coord(pr.y(y)), coord(pr.width), coord(pr.y(y)))
	}
	sb.WriteString("</g>\n")

	fmt.Fprintf(sb, `<g id="axes" stroke="%s" stroke-width="1" stroke-dasharray="6,4">`+"\n", th.Axis)
	fmt.Fprintf(sb, `<line x1="0" y1="%s" x2="%s" y2="%s"/>`+"\n", coord(pr.y(0)), coord(pr.width), coord(pr.y(0)))
	fmt.Fprintf(sb, `<line x1="%s" y1="%d" x2="%s" y2="%s"/>`+"\n", coord(pr.x(0)), titleHeight, coord(pr.x(0)), coord(pr.height))
	sb.WriteString("</g>\n")

	curve := physics.NewCycloid(a).Curve(opts.CurveSamples)
	writePath(sb, pr, curve, string(th.Curve))

	fmt.Fprintf(sb, `<text x="%s" y="%d" fill="%s" font-family="monospace" font-size="16" text-anchor="middle">%s</text>`+"\n",
		coord(pr.width/2), titleHeight-10, th.Title, viz.Title)
}

func writePath(sb *strings.Builder, pr projection, points []dynamo.Point, stroke string) {
	if len(points) < 2 {
		return
	}
	fmt.Fprintf(sb, `<path id="curve" fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range points {
		if i > 0 {
			sb.WriteString(" L")
		}
		sb.WriteString(coord(pr.x(p.X)) + "," + coord(pr.y(p.Y)))
	}
	sb.WriteString(`"/>` + "\n")
}

// CanvasToSVG converts a braille canvas to SVG, one dot per lit sub-pixel,
// coloured by the ink of its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64, th viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	dotRadius := scale * 0.4
	for ink := viz.InkGrid; ink <= viz.InkMarker; ink++ {
		var dots strings.Builder
		for y := 0; y < canvas.SubHeight(); y++ {
			for x := 0; x < canvas.SubWidth(); x++ {
				if !canvas.Dot(x, y) || canvas.InkAt(x, y) != ink {
					continue
				}
				cx := float64(x)*scale + scale/2
				cy := float64(y)*scale + scale/2
				fmt.Fprintf(&dots, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius)
			}
		}
		if dots.Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, `<g fill="%s">`+"\n", th.InkColor(ink))
		sb.WriteString(dots.String())
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
