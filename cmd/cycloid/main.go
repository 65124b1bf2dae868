package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/san-kum/cycloid/internal/automation"
	"github.com/san-kum/cycloid/internal/config"
	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/export"
	"github.com/san-kum/cycloid/internal/metrics"
	"github.com/san-kum/cycloid/internal/physics"
	"github.com/san-kum/cycloid/internal/sim"
	"github.com/san-kum/cycloid/internal/storage"
	"github.com/san-kum/cycloid/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string

	radius        float64
	velocity      float64
	intervalMs    int
	repeatDelayMs int
	repeat        bool
	theme         string
	plain         bool

	// live
	gifPath string
	exit    bool

	// plan
	showFrames bool

	// run
	runName string

	// svg
	svgOut     string
	svgFrame   int
	svgAnimate bool
	svgBraille bool
	svgWidth   int

	// sweep
	vMin    float64
	vMax    float64
	steps   int
	workers int
)

// liveRunner launches the terminal view. Tests replace it.
var liveRunner = viz.Run

// frameSleep is the wait used by the plain runner; nil sleeps for real.
var frameSleep func(ctx context.Context, d time.Duration) error

// terminal reports whether w can host the full view.
var terminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// brailleCols is the canvas width used for svg --braille.
const brailleCols = 72

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cycloid",
		Short: "rolling circle tracing a brachistochrone",
		RunE:  runPrompted,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cycloid", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&radius, "radius", config.DefaultRadius, "circle radius")
	pf.Float64Var(&velocity, "velocity", config.DefaultVelocity, "linear velocity of the centre")
	pf.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "frame interval (ms)")
	pf.IntVar(&repeatDelayMs, "repeat-delay", config.DefaultRepeatDelayMs, "pause after a pass (ms)")
	pf.BoolVar(&repeat, "repeat", false, "restart after each pass")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
	pf.BoolVar(&plain, "plain", false, "print frames as text instead of drawing them")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate without prompting",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&gifPath, "gif", "", "record the first pass to a GIF")
	liveCmd.Flags().BoolVar(&exit, "exit", false, "quit once a non-repeating pass ends")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "print the frame plan",
		Args:  cobra.NoArgs,
		RunE:  printPlan,
	}
	planCmd.Flags().BoolVar(&showFrames, "frames", false, "print every frame")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute every frame and save the run",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&runName, "name", "cycloid", "run name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the traced point of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "write the plot as SVG",
		Args:  cobra.NoArgs,
		RunE:  writeSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "cycloid.svg", "output file")
	svgCmd.Flags().IntVar(&svgFrame, "frame", 0, "frame index to draw")
	svgCmd.Flags().BoolVar(&svgAnimate, "animate", false, "animate every frame")
	svgCmd.Flags().BoolVar(&svgBraille, "braille", false, "draw the terminal canvas dots")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "frame count across a velocity range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&vMin, "vmin", 0.5, "lowest velocity")
	sweepCmd.Flags().Float64Var(&vMax, "vmax", 4, "highest velocity")
	sweepCmd.Flags().IntVar(&steps, "steps", 8, "number of velocities")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = NumCPU)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run and save every entry of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, planCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, svgCmd, sweepCmd, batchCmd, configCmd, presetsCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// increasing order of precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Merge(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("velocity") {
		cfg.Velocity = velocity
	}
	if flags.Changed("interval") {
		cfg.FrameIntervalMs = intervalMs
	}
	if flags.Changed("repeat-delay") {
		cfg.RepeatDelayMs = repeatDelayMs
	}
	if flags.Changed("repeat") {
		cfg.Repeat = repeat
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, ok := viz.GetTheme(cfg.Theme); !ok {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}
	return cfg, nil
}

func liveOptions(cfg *config.Config, plan *sim.Plan) (viz.Options, error) {
	if gifPath != "" && plan.FrameCount > cfg.MaxFrames {
		return viz.Options{}, fmt.Errorf("gif of %d frames, limit %d: %w", plan.FrameCount, cfg.MaxFrames, dynamo.ErrTooManyFrames)
	}
	th, _ := viz.GetTheme(cfg.Theme)
	return viz.Options{
		CurveSamples: cfg.CurveSamples,
		Theme:        th,
		GIFPath:      gifPath,
		ExitWhenDone: exit,
	}, nil
}

// animate shows the plan in the full view, or one text line per frame with
// --plain or when stdout is not a terminal.
func animate(cmd *cobra.Command, cfg *config.Config, plan *sim.Plan) error {
	out := cmd.OutOrStdout()
	if plain || !terminal(out) {
		if gifPath != "" {
			return fmt.Errorf("--gif needs the terminal view")
		}
		tr := viz.NewTextRenderer(out)
		rn := &sim.Runner{Redraw: tr.Redraw, Sleep: frameSleep}
		return rn.Run(cmd.Context(), sim.NewScheduler(plan), tr)
	}

	opts, err := liveOptions(cfg, plan)
	if err != nil {
		return err
	}
	if err := liveRunner(cmd.Context(), plan, opts); err != nil {
		return fmt.Errorf("live view: %w", err)
	}
	if gifPath != "" {
		fmt.Fprintf(out, "saved %s\n", gifPath)
	}
	return nil
}

// runPrompted asks for radius and velocity on stdin, then animates.
func runPrompted(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	params, err := config.PromptParams(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Params())
	if err != nil {
		return err
	}
	cfg.Radius = params.Radius
	cfg.Velocity = params.Velocity

	plan, err := cfg.Plan()
	if err != nil {
		return err
	}
	return animate(cmd, cfg, plan)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	plan, err := cfg.Plan()
	if err != nil {
		return err
	}
	return animate(cmd, cfg, plan)
}

func printPlan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	plan, err := cfg.Plan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "radius: %g\n", plan.Params.Radius)
	fmt.Fprintf(out, "velocity: %g\n", plan.Params.Velocity)
	fmt.Fprintf(out, "frames per second: %g\n", plan.FramesPerSecond)
	fmt.Fprintf(out, "distance: %.3f\n", plan.Distance)
	fmt.Fprintf(out, "total time: %.3fs\n", plan.TotalTime)
	fmt.Fprintf(out, "frame count: %d\n", plan.FrameCount)
	fmt.Fprintf(out, "pass duration: %v\n", plan.Duration())
	model := physics.NewCycloid(plan.Params.Radius)
	fmt.Fprintf(out, "arch height: %.3f\n", model.Height())
	fmt.Fprintf(out, "arch span: %.3f\n", model.Span())
	fmt.Fprintf(out, "arc length: %.3f\n", physics.ArcLength(physics.Revolution, plan.Params.Radius))
	fmt.Fprintf(out, "area under arch: %.3f\n", physics.Area(plan.Params.Radius))

	if !showFrames {
		return nil
	}
	if plan.FrameCount > cfg.MaxFrames {
		return fmt.Errorf("%d frames, limit %d: %w", plan.FrameCount, cfg.MaxFrames, dynamo.ErrTooManyFrames)
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tANGLE\tTIME\tCENTER\tPOINT")
	s := sim.NewScheduler(plan)
	for {
		f, ok := s.Next()
		if !ok {
			break
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.3fs\t(%.3f, %.3f)\t(%.3f, %.3f)\n",
			f.Index, f.Angle, f.Time, f.Center.X, f.Center.Y, f.Point.X, f.Point.Y)
	}
	return w.Flush()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	plan, err := cfg.Plan()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s...\n", plan)
	start := time.Now()

	result, err := sim.Simulate(cmd.Context(), plan, cfg.MaxFrames, metrics.Defaults(cfg.Radius)...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runName, result)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "frames: %d\n", len(result.Frames))
	fmt.Fprintln(out, "\nmetrics:")
	for _, m := range metrics.Defaults(cfg.Radius) {
		fmt.Fprintf(out, "  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tRADIUS\tVELOCITY\tINTERVAL\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%gms\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Radius,
			run.Velocity,
			run.FrameIntervalMs,
			run.FrameCount,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s: %w", runID, dynamo.ErrNoFrames)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "radius: %g  velocity: %g\n", meta.Radius, meta.Velocity)
	fmt.Fprintf(out, "frames: %d\n\n", len(frames))

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	for i, f := range frames {
		xs[i] = f.Point.X
		ys[i] = f.Point.Y
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{xs, "traced point x vs frame"},
		{ys, "traced point y vs frame"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(cmd.OutOrStdout(), args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
}

func writeSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	plan, err := cfg.Plan()
	if err != nil {
		return err
	}

	th, _ := viz.GetTheme(cfg.Theme)
	opts := export.Options{Width: svgWidth, CurveSamples: cfg.CurveSamples, Theme: th}

	if svgFrame < 0 || svgFrame >= plan.FrameCount {
		return &dynamo.ParameterError{Name: "frame", Value: float64(svgFrame), Wrapped: dynamo.ErrParameterBounds}
	}
	sched := sim.NewScheduler(plan)
	frame := sched.Frame(svgFrame)

	var doc string
	switch {
	case svgAnimate:
		doc, err = export.AnimatedSVG(plan, opts)
		if err != nil {
			return err
		}
	case svgBraille:
		scene := viz.NewScene(cfg.Radius, sched.Model().Curve(cfg.CurveSamples), brailleCols)
		scene.SetCircleCenter(frame.Center)
		scene.SetMarkerPosition(frame.Point)
		canvas := scene.NewCanvas()
		scene.Draw(canvas)
		doc = export.CanvasToSVG(canvas, float64(svgWidth)/float64(canvas.SubWidth()), th)
	default:
		doc = export.FrameSVG(plan, frame, opts)
	}

	if err := os.WriteFile(svgOut, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgOut)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if steps < 1 {
		return &dynamo.ParameterError{Name: "steps", Value: float64(steps), Wrapped: dynamo.ErrParameterBounds}
	}

	velocities := sim.Linspace(vMin, vMax, steps)
	points, err := sim.Sweep(cmd.Context(), cfg.Radius, velocities, cfg.Timing(), workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VELOCITY\tTOTAL TIME\tFRAMES\tPASS")
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%g\t-\t-\t%v\n", p.Velocity, p.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%.3fs\t%d\t%v\n", p.Velocity, p.Plan.TotalTime, p.Plan.FrameCount, p.Plan.Duration())
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scenario.Description != "" {
		fmt.Fprintf(out, "%s: %s\n", scenario.Name, scenario.Description)
	}
	ids, err := automation.RunScenario(cmd.Context(), scenario, st, cfg, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nsaved runs:")
	for _, id := range ids {
		fmt.Fprintf(out, "  %s\n", id)
	}
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRADIUS\tVELOCITY\tINTERVAL\tREPEAT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%dms\t%v\n", name, p.Radius, p.Velocity, p.FrameIntervalMs, p.Repeat)
	}
	return w.Flush()
}
