package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/standwave/internal/config"
	"github.com/san-kum/standwave/internal/storage"
)

const scenarioYAML = `
name: boundaries
description: fixed end against open end
steps:
  - name: fixed
    preset: fixed
    frames: 50
    resolution: 41
    save_as: fixed
  - preset: open
    frequency: 2
    frames: 20
    record: true
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sc.Name != "boundaries" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	fixed := sc.Steps[0]
	if fixed.Config.Reflection != -1 || fixed.Config.Frames != 50 || fixed.Config.Resolution != 41 {
		t.Errorf("preset overrides not applied: %+v", fixed.Config)
	}
	if fixed.SaveAs != "fixed" {
		t.Errorf("expected save_as fixed, got %q", fixed.SaveAs)
	}

	open := sc.Steps[1]
	if open.Config.Frequency != 2 || !open.Config.Record || open.Config.FPS != config.DefaultFPS {
		t.Errorf("unexpected open step %+v", open.Config)
	}
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no steps", "name: empty\n"},
		{"unknown preset", "steps:\n  - preset: nope\n"},
		{"invalid step", "steps:\n  - velocity: 0\n"},
		{"bad yaml", "steps: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScenario([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := LoadScenario(path + ".missing"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())

	results, err := RunScenario(context.Background(), sc, store, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Result.Frames != 50 || results[0].RunID == "" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].Name != "step2" || results[1].RunID != "" {
		t.Errorf("unexpected second result %+v", results[1])
	}
	if len(results[1].Result.Combined) != 20 {
		t.Errorf("expected 20 recorded frames, got %d", len(results[1].Result.Combined))
	}

	meta, err := store.Load(results[0].RunID)
	if err != nil {
		t.Fatalf("stored run: %v", err)
	}
	if meta.Reflection != -1 || meta.Resolution != 41 {
		t.Errorf("unexpected stored metadata %+v", meta)
	}
}

func TestRunScenario_Cancelled(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RunScenario(ctx, sc, nil, nil); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestSweepValues(t *testing.T) {
	sw := &ParameterSweep{Min: 0, Max: 1, Steps: 5}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	got := sw.Values()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("value %d: got %g want %g", i, got[i], want[i])
		}
	}

	single := &ParameterSweep{Min: 3, Max: 9, Steps: 1}
	if v := single.Values(); len(v) != 1 || v[0] != 3 {
		t.Errorf("unexpected single step values %v", v)
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Resolution = 201
	base.Frames = 100

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:  base,
		Param: "reflection",
		Min:   0,
		Max:   0.5,
		Steps: 2,
	}, nil)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if math.Abs(results[0].MeasuredSWR-1) > 0.01 {
		t.Errorf("r=0: expected SWR near 1, got %f", results[0].MeasuredSWR)
	}
	if math.Abs(results[1].MeasuredSWR-3) > 0.02 {
		t.Errorf("r=0.5: expected SWR near 3, got %f", results[1].MeasuredSWR)
	}
	if math.Abs(results[1].Peak-1.5) > 0.01 {
		t.Errorf("r=0.5: expected peak near 1.5, got %f", results[1].Peak)
	}
	for _, r := range results {
		if r.Traces != 100 {
			t.Errorf("expected 100 traces, got %d", r.Traces)
		}
	}
	if base.Reflection != 1 {
		t.Error("sweep mutated the base config")
	}
}

func TestRunSweep_Errors(t *testing.T) {
	base := config.DefaultConfig()
	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, Param: "mass", Min: 0, Max: 1, Steps: 2}, nil); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, Param: "velocity", Min: 0, Max: 1, Steps: 2}, nil); err == nil {
		t.Error("expected error for zero velocity")
	}
	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, Param: "length", Steps: 0}, nil); err == nil {
		t.Error("expected error for zero steps")
	}
}
