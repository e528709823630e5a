// Package sweephcl loads sweep specifications from HCL files.
package sweephcl

import (
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"tollsweep/core/adoption"
	"tollsweep/core/scenario"
	"tollsweep/core/sweep"
	"tollsweep/internal/config"
	"tollsweep/internal/errors"
)

// File is the decoded form of a sweep spec file.
//
//	tolls = [0.0, 0.5, 1.0]
//	seed  = 42
//
//	adoption {
//	  midpoint = 2.5
//	}
type File struct {
	Tolls          []float64 `hcl:"tolls"`
	Seed           int64     `hcl:"seed,optional"`
	GridCostPerKWh *float64  `hcl:"grid_cost_per_kwh,optional"`
	Workers        int       `hcl:"workers,optional"`
	ScenariosDir   string    `hcl:"scenarios_dir,optional"`
	NetworkFile    string    `hcl:"network_file,optional"`

	Adoption *AdoptionBlock `hcl:"adoption,block"`
	Window   *WindowBlock   `hcl:"window,block"`
}

// AdoptionBlock overrides the default adoption parameters. Unset
// attributes keep their defaults.
type AdoptionBlock struct {
	BaselineShare    *float64 `hcl:"baseline_share,optional"`
	MaxShare         *float64 `hcl:"max_share,optional"`
	Midpoint         *float64 `hcl:"midpoint,optional"`
	Steepness        *float64 `hcl:"steepness,optional"`
	ZeroTollOverride *float64 `hcl:"zero_toll_override,optional"`
}

// WindowBlock overrides the default simulation window. Seconds since
// midnight, as the simulator expects.
type WindowBlock struct {
	Begin      *int `hcl:"begin,optional"`
	End        *int `hcl:"end,optional"`
	StepLength *int `hcl:"step_length,optional"`
}

// Load parses a sweep spec file.
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "sweep spec %s not found", path)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Newf(errors.TypeConfig, "parsing %s: %s", path, diags.Error())
	}

	var f File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
		return nil, errors.Newf(errors.TypeConfig, "decoding %s: %s", path, diags.Error())
	}
	return &f, nil
}

// Params resolves the adoption parameters, applying block overrides on
// top of the defaults.
func (f *File) Params() adoption.Parameters {
	p := adoption.DefaultParameters()
	if f.Adoption == nil {
		return p
	}
	if f.Adoption.BaselineShare != nil {
		p.BaselineShare = *f.Adoption.BaselineShare
	}
	if f.Adoption.MaxShare != nil {
		p.MaxShare = *f.Adoption.MaxShare
	}
	if f.Adoption.Midpoint != nil {
		p.Midpoint = *f.Adoption.Midpoint
	}
	if f.Adoption.Steepness != nil {
		p.Steepness = *f.Adoption.Steepness
	}
	p.ZeroTollOverride = f.Adoption.ZeroTollOverride
	return p
}

// ResolvedWindow resolves the simulation window with defaults applied.
func (f *File) ResolvedWindow() scenario.Window {
	w := scenario.DefaultWindow()
	if f.Window == nil {
		return w
	}
	if f.Window.Begin != nil {
		w.Begin = *f.Window.Begin
	}
	if f.Window.End != nil {
		w.End = *f.Window.End
	}
	if f.Window.StepLength != nil {
		w.StepLength = *f.Window.StepLength
	}
	return w
}

// Spec builds a sweep spec from the file, falling back to the app
// config for anything the file leaves unset. The base fleet is not
// part of the file and is left for the caller to attach.
func (f *File) Spec(cfg *config.Config) sweep.Spec {
	grid := make([]scenario.TollPrice, 0, len(f.Tolls))
	for _, t := range f.Tolls {
		grid = append(grid, scenario.TollPrice(t))
	}

	spec := sweep.Spec{
		Grid:           grid,
		Params:         f.Params(),
		Window:         f.ResolvedWindow(),
		GridCostPerKWh: cfg.Economics.GridCostPerKWh,
		Seed:           f.Seed,
		ScenariosDir:   cfg.Simulation.ScenariosDir,
		NetworkFile:    cfg.Simulation.NetworkFile,
		Workers:        cfg.Simulation.Workers,
	}
	if f.GridCostPerKWh != nil {
		spec.GridCostPerKWh = *f.GridCostPerKWh
	}
	if f.ScenariosDir != "" {
		spec.ScenariosDir = f.ScenariosDir
	}
	if f.NetworkFile != "" {
		spec.NetworkFile = f.NetworkFile
	}
	if f.Workers > 0 {
		spec.Workers = f.Workers
	}
	return spec
}
