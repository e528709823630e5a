package sumo

import (
	"context"
	"path/filepath"

	"tollsweep/core/fleet"
	"tollsweep/core/kpi"
	"tollsweep/core/scenario"
)

// Adapter wires the SUMO integration into the sweep runner: artifact
// writing, process invocation, and tripinfo streaming.
type Adapter struct {
	runner *Runner
}

// NewAdapter creates an adapter around the given simulator binary.
func NewAdapter(binary string) *Adapter {
	return &Adapter{runner: NewRunner(binary)}
}

// Prepare writes the scenario artifact and returns the configuration path.
func (a *Adapter) Prepare(dir, networkFile string, artifact *fleet.Artifact) (string, error) {
	return WriteArtifact(dir, networkFile, artifact)
}

// Run invokes the simulator for one scenario.
func (a *Adapter) Run(ctx context.Context, configPath string) error {
	return a.runner.Simulate(ctx, configPath)
}

// Output opens the scenario's tripinfo stream.
func (a *Adapter) Output(dir string, toll scenario.TollPrice) (kpi.TripSource, error) {
	return OpenTripinfo(filepath.Join(dir, toll.TripinfoFile()))
}
