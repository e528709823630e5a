package sweephcl

import (
	"os"
	"path/filepath"
	"testing"

	"tollsweep/core/scenario"
	"tollsweep/internal/config"
	"tollsweep/internal/errors"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing spec file: %v", err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeSpec(t, `
tolls             = [0.0, 1.5, 3.0]
seed              = 42
grid_cost_per_kwh = 0.25
workers           = 4
scenarios_dir     = "out"
network_file      = "city.net.xml"

adoption {
  baseline_share     = 0.10
  max_share          = 0.80
  midpoint           = 2.0
  steepness          = 0.5
  zero_toll_override = 0.05
}

window {
  begin       = 0
  end         = 3600
  step_length = 2
}
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(f.Tolls) != 3 || f.Tolls[1] != 1.5 {
		t.Errorf("unexpected tolls: %v", f.Tolls)
	}
	if f.Seed != 42 {
		t.Errorf("seed = %d, want 42", f.Seed)
	}

	p := f.Params()
	if p.BaselineShare != 0.10 || p.MaxShare != 0.80 || p.Midpoint != 2.0 || p.Steepness != 0.5 {
		t.Errorf("unexpected params: %+v", p)
	}
	if p.ZeroTollOverride == nil || *p.ZeroTollOverride != 0.05 {
		t.Errorf("zero toll override not carried: %v", p.ZeroTollOverride)
	}

	w := f.ResolvedWindow()
	if w.Begin != 0 || w.End != 3600 || w.StepLength != 2 {
		t.Errorf("unexpected window: %+v", w)
	}

	spec := f.Spec(config.Default())
	if spec.GridCostPerKWh != 0.25 {
		t.Errorf("grid cost = %v, want file override 0.25", spec.GridCostPerKWh)
	}
	if spec.ScenariosDir != "out" || spec.NetworkFile != "city.net.xml" || spec.Workers != 4 {
		t.Errorf("unexpected spec: %+v", spec)
	}
	if spec.Grid[2] != scenario.TollPrice(3.0) {
		t.Errorf("unexpected grid: %v", spec.Grid)
	}
}

func TestLoadMinimal(t *testing.T) {
	path := writeSpec(t, `tolls = [2.5]`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := f.Params()
	if p.Midpoint != 2.5 || p.Steepness != 1.0 {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.ZeroTollOverride != nil {
		t.Errorf("zero toll override should be unset, got %v", *p.ZeroTollOverride)
	}

	w := f.ResolvedWindow()
	if w.Begin != 32400 || w.End != 39600 {
		t.Errorf("default window not applied: %+v", w)
	}

	cfg := config.Default()
	spec := f.Spec(cfg)
	if spec.GridCostPerKWh != cfg.Economics.GridCostPerKWh {
		t.Errorf("grid cost should fall back to config, got %v", spec.GridCostPerKWh)
	}
	if spec.ScenariosDir != cfg.Simulation.ScenariosDir {
		t.Errorf("scenarios dir should fall back to config, got %q", spec.ScenariosDir)
	}
}

func TestLoadPartialAdoptionBlock(t *testing.T) {
	path := writeSpec(t, `
tolls = [1.0]

adoption {
  midpoint = 3.5
}
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := f.Params()
	if p.Midpoint != 3.5 {
		t.Errorf("midpoint = %v, want 3.5", p.Midpoint)
	}
	if p.BaselineShare != 0.15 || p.MaxShare != 0.90 {
		t.Errorf("unset attributes should keep defaults: %+v", p)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeSpec(t, `tolls = [0.5`)

	_, err := Load(path)
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestLoadUnknownAttribute(t *testing.T) {
	path := writeSpec(t, `
tolls  = [0.5]
bogus  = true
`)

	_, err := Load(path)
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected config error for unknown attribute, got %v", err)
	}
}
