package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/standwave/internal/analysis"
	"github.com/san-kum/standwave/internal/config"
	"github.com/san-kum/standwave/internal/logging"
	"github.com/san-kum/standwave/internal/metrics"
	"github.com/san-kum/standwave/internal/sim"
	"github.com/san-kum/standwave/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Its config starts from Preset (or the defaults)
// and any config keys given in the step override it.
type ScenarioStep struct {
	Name   string
	Preset string
	SaveAs string
	Config *config.Config
}

func (s *ScenarioStep) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Name   string `yaml:"name"`
		Preset string `yaml:"preset"`
		SaveAs string `yaml:"save_as"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if head.Preset != "" {
		if cfg = config.GetPreset(head.Preset); cfg == nil {
			return fmt.Errorf("line %d: unknown preset %q", value.Line, head.Preset)
		}
	}
	if err := value.Decode(cfg); err != nil {
		return err
	}

	s.Name = head.Name
	s.Preset = head.Preset
	s.SaveAs = head.SaveAs
	s.Config = cfg
	return nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	for i, step := range scenario.Steps {
		if err := step.Config.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

type StepResult struct {
	Name   string
	Result *sim.Result
	RunID  string
}

// RunScenario executes all steps in order. Steps with save_as are written to
// store when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, log *slog.Logger) ([]StepResult, error) {
	if log == nil {
		log = logging.Discard()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name)

		s, err := sim.NewSession(step.Config.SessionConfig(), sim.WithLogger(log))
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		r := sim.NewRunner(s)
		for _, m := range metrics.Default() {
			r.AddMetric(m)
		}

		result, err := r.Run(ctx, sim.RunConfig{Frames: step.Config.Frames, Record: step.Config.Record})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if store != nil && step.SaveAs != "" {
			id, err := store.Save(step.SaveAs, step.Config.Trace, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep varies one physical parameter over [Min, Max] in Steps
// evenly spaced values, keeping everything else from Base.
type ParameterSweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value       float64
	Peak        float64
	MeanSquare  float64
	Traces      int
	MeasuredSWR float64
}

// Values returns the parameter values the sweep visits.
func (p *ParameterSweep) Values() []float64 {
	if p.Steps == 1 {
		return []float64{p.Min}
	}
	vals := make([]float64, p.Steps)
	step := (p.Max - p.Min) / float64(p.Steps-1)
	for i := range vals {
		vals[i] = p.Min + float64(i)*step
	}
	vals[p.Steps-1] = p.Max
	return vals
}

// RunSweep runs every sweep point concurrently as an ensemble.
func RunSweep(ctx context.Context, sweep *ParameterSweep, log *slog.Logger) ([]SweepResult, error) {
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.Steps)
	}
	if log == nil {
		log = logging.Discard()
	}

	values := sweep.Values()
	configs := make([]sim.SessionConfig, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := SetParam(cfg, sweep.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		configs[i] = cfg.SessionConfig()
	}

	ens := sim.NewEnsemble(configs, metrics.Default, log)
	runs, err := ens.Run(ctx, sim.RunConfig{Frames: sweep.Base.Frames, Record: true})
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{
			Value:       values[i],
			Peak:        r.Metrics["peak"],
			MeanSquare:  r.Metrics["mean_square"],
			Traces:      len(r.Traces),
			MeasuredSWR: analysis.MeasuredSWR(analysis.Envelope(r.Combined)),
		}
		log.Debug("sweep point", "param", sweep.Param, "value", values[i], "peak", results[i].Peak)
	}
	return results, nil
}

// SetParam assigns one of the physical parameters by its config key.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "length", "L":
		cfg.Length = v
	case "reflection", "r":
		cfg.Reflection = v
	case "velocity", "v":
		cfg.Velocity = v
	case "frequency", "f":
		cfg.Frequency = v
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}
