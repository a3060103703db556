package main

import (
	"fmt"
	"strconv"

	"github.com/san-kum/standwave/internal/config"
	"github.com/spf13/cobra"
)

// positionalArgs accepts the classic invocation forms: nothing, a lone trace
// flag, or L r v f with an optional trace flag.
func positionalArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0, 1, 4, 5:
		return nil
	}
	return fmt.Errorf("expected [trace] or [L r v f [trace]], got %d args", len(args))
}

// applyPositional overlays positional arguments onto cfg. A trace value
// greater than zero turns tracing on.
func applyPositional(cfg *config.Config, args []string) error {
	var traceArg string
	switch len(args) {
	case 0:
		return nil
	case 1:
		traceArg = args[0]
	case 4, 5:
		targets := []*float64{&cfg.Length, &cfg.Reflection, &cfg.Velocity, &cfg.Frequency}
		names := []string{"L", "r", "v", "f"}
		for i, dst := range targets {
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}
			*dst = v
		}
		if len(args) == 5 {
			traceArg = args[4]
		}
	default:
		return fmt.Errorf("expected [trace] or [L r v f [trace]], got %d args", len(args))
	}

	if traceArg != "" {
		n, err := strconv.Atoi(traceArg)
		if err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		cfg.Trace = n > 0
	}
	return nil
}

// resolveConfig builds the effective config: defaults, then the preset, then
// the config file, then positional arguments, then explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset == "" {
			cfg = loaded
		} else {
			overlayFile(cfg, loaded)
		}
	}

	if err := applyPositional(cfg, args); err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFile copies the driver settings of a loaded file over a preset. The
// preset keeps its physical parameters.
func overlayFile(cfg, loaded *config.Config) {
	cfg.Resolution = loaded.Resolution
	cfg.Trace = loaded.Trace
	cfg.Frames = loaded.Frames
	cfg.FPS = loaded.FPS
	cfg.Theme = loaded.Theme
	cfg.LogLevel = loaded.LogLevel
	cfg.Record = loaded.Record
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("length") {
		cfg.Length = length
	}
	if f.Changed("reflection") {
		cfg.Reflection = reflection
	}
	if f.Changed("velocity") {
		cfg.Velocity = velocity
	}
	if f.Changed("frequency") {
		cfg.Frequency = frequency
	}
	if f.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if f.Changed("trace") {
		cfg.Trace = trace
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("frames") {
		cfg.Frames = frames
	}
	if f.Changed("max-traces") {
		cfg.MaxTraces = maxTraces
	}
	if f.Changed("fps") {
		cfg.FPS = frameRate
	}
	if f.Changed("theme") {
		cfg.Theme = theme
	}
	if f.Changed("record") {
		cfg.Record = record
	}
	if f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
}
