package config

import (
	"fmt"
	"os"

	"github.com/san-kum/standwave/internal/sim"
	"github.com/san-kum/standwave/internal/wave"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLength     = 1.0
	DefaultReflection = 1.0
	DefaultVelocity   = 1.0
	DefaultFrequency  = 1.0
	DefaultResolution = 200
	DefaultDt         = sim.DefaultDt
	DefaultFrames     = 1000
	DefaultFPS        = 50
	DefaultTheme      = "cyberpunk"
	DefaultLogLevel   = "info"
)

type Config struct {
	Length     float64 `yaml:"length"`
	Reflection float64 `yaml:"reflection"`
	Velocity   float64 `yaml:"velocity"`
	Frequency  float64 `yaml:"frequency"`
	Resolution int     `yaml:"resolution"`
	Trace      bool    `yaml:"trace"`
	Dt         float64 `yaml:"dt"`
	Frames     int     `yaml:"frames"`
	FPS        int     `yaml:"fps"`
	MaxTraces  int     `yaml:"max_traces"`
	Record     bool    `yaml:"record"`
	Theme      string  `yaml:"theme"`
	LogLevel   string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Length:     DefaultLength,
		Reflection: DefaultReflection,
		Velocity:   DefaultVelocity,
		Frequency:  DefaultFrequency,
		Resolution: DefaultResolution,
		Trace:      true,
		Dt:         DefaultDt,
		Frames:     DefaultFrames,
		FPS:        DefaultFPS,
		Theme:      DefaultTheme,
		Record:     true,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads a yaml file on top of the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() wave.Params {
	return wave.Params{
		Length:     c.Length,
		Reflection: c.Reflection,
		Velocity:   c.Velocity,
		Frequency:  c.Frequency,
	}
}

func (c *Config) SessionConfig() sim.SessionConfig {
	return sim.SessionConfig{
		Params:     c.Params(),
		Resolution: c.Resolution,
		Tracing:    c.Trace,
		Dt:         c.Dt,
		MaxTraces:  c.MaxTraces,
	}
}

// Validate checks everything NewSession would reject plus the driver settings.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Resolution < 2 {
		return &wave.ConfigError{Field: "resolution", Value: float64(c.Resolution), Wrapped: wave.ErrInvalidResolution}
	}
	if c.Dt < 0 {
		return fmt.Errorf("dt=%g: %w", c.Dt, sim.ErrInvalidDt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MaxTraces < 0 {
		return fmt.Errorf("max_traces must be non-negative, got %d", c.MaxTraces)
	}
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
