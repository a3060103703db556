package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/standwave/internal/config"
	"github.com/san-kum/standwave/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logFile  string

	configFile string
	preset     string

	length     float64
	reflection float64
	velocity   float64
	frequency  float64
	resolution int
	trace      bool
	dt         float64
	frames     int
	frameRate  int
	maxTraces  int
	theme      string
	record     bool

	outDir     string
	outFile    string
	frameIndex int
	probeIndex int

	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	benchFrames int
)

// main registers the standwave commands. With no subcommand it opens the live
// view, accepting the same positional L r v f [trace] form as run.
func main() {
	rootCmd := &cobra.Command{
		Use:   "standwave [L r v f [trace]]",
		Short: "standing wave lab: incident and reflected waves in a finite medium",
		Args:  positionalArgs,
		RunE:  runLive,
	}
	rootCmd.Example = `  standwave
  standwave 0
  standwave -- 1 -1 1 2 1
  standwave --preset partial --theme ocean`

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".standwave", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	addWaveFlags(rootCmd)
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.Flags().StringVar(&outDir, "out", ".", "directory for gif and svg captures")

	liveCmd := &cobra.Command{
		Use:   "live [L r v f [trace]]",
		Short: "animate the wave in the terminal",
		Args:  positionalArgs,
		RunE:  runLive,
	}
	addWaveFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	liveCmd.Flags().StringVar(&outDir, "out", ".", "directory for gif and svg captures")

	guiCmd := &cobra.Command{
		Use:   "gui [L r v f [trace]]",
		Short: "animate the wave in a window (build with -tags gui)",
		Args:  positionalArgs,
		RunE:  runGUI,
	}
	addWaveFlags(guiCmd)
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")
	guiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	runCmd := &cobra.Command{
		Use:   "run [L r v f [trace]]",
		Short: "run headless and save the result",
		Args:  positionalArgs,
		RunE:  runHeadless,
	}
	runCmd.Example = `  standwave run --frames 200
  standwave run -- 2 -1 1 1 0`
	addWaveFlags(runCmd)
	runCmd.Flags().BoolVar(&record, "record", true, "store every combined curve")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored frame, its envelope and the trace count",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame to plot (default last)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one frame of a run with its traces as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame to render (default last)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum, nodes and standing wave ratio of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&probeIndex, "probe", -1, "grid point for the spectrum (default quarter length)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [length|reflection|velocity|frequency]",
		Short: "sweep one parameter and compare runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addWaveFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the sampler at several resolutions",
		RunE:  benchSampler,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 200, "frames per resolution")

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		analyzeCmd, sweepCmd, scenarioCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addWaveFlags registers the config-backed flags shared by every command that
// builds a session.
func addWaveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64VarP(&length, "length", "L", config.DefaultLength, "medium length (m)")
	f.Float64VarP(&reflection, "reflection", "r", config.DefaultReflection, "reflection coefficient")
	f.Float64VarP(&velocity, "velocity", "v", config.DefaultVelocity, "phase velocity (m/s)")
	f.Float64VarP(&frequency, "frequency", "f", config.DefaultFrequency, "frequency (Hz)")
	f.IntVar(&resolution, "resolution", config.DefaultResolution, "grid points")
	f.BoolVar(&trace, "trace", true, "trace the combined wave during the first period")
	f.Float64Var(&dt, "dt", config.DefaultDt, "seconds per frame")
	f.IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	f.IntVar(&maxTraces, "max-traces", 0, "cap on traced snapshots (0 = none)")
}

// newLogger builds the process logger. The live view passes quiet so that
// log lines never land on the alternate screen.
func newLogger(level string, quiet bool) (*slog.Logger, func(), error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logging.NewLogger(level, f), func() { f.Close() }, nil
	}
	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	return logging.NewLogger(level, w), func() {}, nil
}
