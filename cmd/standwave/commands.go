package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/standwave/internal/analysis"
	"github.com/san-kum/standwave/internal/automation"
	"github.com/san-kum/standwave/internal/config"
	"github.com/san-kum/standwave/internal/export"
	"github.com/san-kum/standwave/internal/gui"
	"github.com/san-kum/standwave/internal/metrics"
	"github.com/san-kum/standwave/internal/sim"
	"github.com/san-kum/standwave/internal/storage"
	"github.com/san-kum/standwave/internal/viz"
	"github.com/san-kum/standwave/internal/wave"
	"github.com/spf13/cobra"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg.LogLevel, true)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := viz.NewModel(cfg.SessionConfig(), viz.Options{
		FPS:       cfg.FPS,
		MaxFrames: cfg.Frames,
		Theme:     cfg.Theme,
		OutDir:    outDir,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer closeLog()

	return gui.Run(cfg.SessionConfig(), gui.Options{
		FPS:       cfg.FPS,
		MaxFrames: cfg.Frames,
		Theme:     cfg.Theme,
		Logger:    log,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(dataDir).WithLogger(log)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := sim.NewSession(cfg.SessionConfig(), sim.WithLogger(log))
	if err != nil {
		return err
	}
	r := sim.NewRunner(s)
	for _, m := range metrics.Default() {
		r.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running L=%g r=%g v=%g f=%g for %d frames...\n", cfg.Length, cfg.Reflection, cfg.Velocity, cfg.Frequency, cfg.Frames)
	start := time.Now()

	result, err := r.Run(ctx, sim.RunConfig{Frames: cfg.Frames, Record: cfg.Record})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	name := preset
	if name == "" {
		name = "wave"
	}
	runID, err := st.Save(name, cfg.Trace, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("trace: %s, %d snapshots\n", s.State(), len(result.Traces))
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Default() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tL\tR\tV\tF\tFRAMES\tTRACES\tRECORDED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%d\t%d\t%t\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Length,
			run.Reflection,
			run.Velocity,
			run.Frequency,
			run.Frames,
			run.Traces,
			run.Recorded,
		)
	}

	return w.Flush()
}

// loadRecorded returns a run's metadata and frames, failing when the run was
// saved without recording.
func loadRecorded(st *storage.Store, runID string) (*storage.RunMetadata, [][]float64, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	if !meta.Recorded {
		return nil, nil, fmt.Errorf("run %s was saved without --record", runID)
	}
	frameData, _, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frameData) == 0 {
		return nil, nil, fmt.Errorf("no data to plot")
	}
	return meta, frameData, nil
}

func pickFrame(n int) (int, error) {
	if frameIndex < 0 {
		return n - 1, nil
	}
	if frameIndex >= n {
		return 0, fmt.Errorf("frame %d out of range [0, %d)", frameIndex, n)
	}
	return frameIndex, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, frameData, err := loadRecorded(st, runID)
	if err != nil {
		return err
	}
	idx, err := pickFrame(len(frameData))
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("L=%g r=%g v=%g f=%g\n", meta.Length, meta.Reflection, meta.Velocity, meta.Frequency)
	fmt.Printf("frames: %d, traces: %d\n\n", len(frameData), meta.Traces)

	graph := asciigraph.Plot(frameData[idx],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("combined, %s", sim.Label(float64(idx)*meta.Dt))),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(analysis.Envelope(frameData),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("envelope max |combined|"),
	)
	fmt.Println(graph)
	return nil
}

// output opens outFile, or stdout when it is empty.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	w, closeOut, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportJSON(w, args[0]); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	w, closeOut, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportCSV(w, args[0]); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

// exportSVG recomputes the requested frame from the stored parameters, so it
// works for runs saved without recording too.
func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traces, err := st.LoadTraces(runID)
	if err != nil {
		return err
	}
	idx, err := pickFrame(meta.Frames)
	if err != nil {
		return err
	}

	params := wave.Params{
		Length:     meta.Length,
		Reflection: meta.Reflection,
		Velocity:   meta.Velocity,
		Frequency:  meta.Frequency,
	}
	sampler, err := wave.NewSampler(params, meta.Resolution)
	if err != nil {
		return err
	}

	t := float64(idx) * meta.Dt
	if idx < len(traces) {
		traces = traces[:idx]
	}
	svg := export.FrameToSVG(sampler.Grid(), sampler.Sample(t), traces, export.Options{Label: sim.Label(t)})

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, frameData, err := loadRecorded(st, runID)
	if err != nil {
		return err
	}

	probe := probeIndex
	if probe < 0 {
		probe = meta.Resolution / 4
	}
	if probe >= meta.Resolution {
		return fmt.Errorf("probe %d out of range [0, %d)", probe, meta.Resolution)
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("L=%g r=%g v=%g f=%g\n\n", meta.Length, meta.Reflection, meta.Velocity, meta.Frequency)

	series := analysis.Probe(frameData, probe)
	ps := analysis.PowerSpectrum(series)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps[:len(ps)/2],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum at x=%.3f", meta.Grid[probe])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(series, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	env := analysis.Envelope(frameData)
	nodes := analysis.Nodes(meta.Grid, env)
	fmt.Printf("nodes: %d\n", len(nodes))
	for _, x := range nodes {
		fmt.Printf("  x=%.3f\n", x)
	}
	fmt.Printf("standing wave ratio: measured %s, expected %s\n",
		formatRatio(analysis.MeasuredSWR(env)),
		formatRatio(analysis.StandingWaveRatio(meta.Reflection)))
	return nil
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.3f", v)
}

func runSweep(cmd *cobra.Command, args []string) error {
	param := args[0]
	base, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(base.LogLevel, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:  base,
		Param: param,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	}, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK\tMEAN_SQ\tTRACES\tSWR\n", param)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%d\t%s\n", r.Value, r.Peak, r.MeanSquare, r.Traces, formatRatio(r.MeasuredSWR))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	log, closeLog, err := newLogger(logLevel, false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir).WithLogger(log)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, st, log)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tPEAK\tTRACES\tRUN")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%d\t%s\n", r.Name, r.Result.Frames, r.Result.Metrics["peak"], len(r.Result.Traces), runID)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tL\tR\tV\tF\tPERIOD")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		period := cfg.Params().Period()
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%s\n", name, cfg.Length, cfg.Reflection, cfg.Velocity, cfg.Frequency, formatRatio(period))
	}
	return w.Flush()
}

func benchSampler(cmd *cobra.Command, args []string) error {
	if benchFrames <= 0 {
		return fmt.Errorf("frames must be positive")
	}
	resolutions := []int{200, 2000, 20000, 200000}

	fmt.Printf("benchmarking sampler, %d frames each\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tPARALLEL\tTIME\tFRAMES/SEC\tPOINTS/SEC")

	for _, n := range resolutions {
		sampler, err := wave.NewSampler(wave.DefaultParams(), n)
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			sampler.Sample(float64(i) * sim.DefaultDt)
		}
		elapsed := time.Since(start)

		framesPerSec := float64(benchFrames) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%t\t%v\t%.0f\t%.0f\n",
			n, n >= wave.ParallelThreshold, elapsed, framesPerSec, framesPerSec*float64(n))
	}

	return w.Flush()
}
