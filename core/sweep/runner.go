// Package sweep orchestrates a toll-price sweep: one independent
// synthesize-simulate-aggregate pipeline per toll price, a deterministic
// sorted merge at the end. Pipelines share no mutable state, so the grid
// may run sequentially or on a worker pool without changing results.
package sweep

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tollsweep/core/adoption"
	"tollsweep/core/fleet"
	"tollsweep/core/kpi"
	"tollsweep/core/scenario"
	"tollsweep/internal/errors"
	"tollsweep/internal/logging"
)

// Simulator abstracts the external micro-simulator integration: artifact
// materialization, process invocation, and output discovery.
type Simulator interface {
	// Prepare materializes the scenario artifact and returns the
	// simulator configuration location.
	Prepare(dir, networkFile string, artifact *fleet.Artifact) (string, error)

	// Run executes one scenario to completion.
	Run(ctx context.Context, configPath string) error

	// Output opens the scenario's trip-record stream. The returned source
	// may also implement io.Closer.
	Output(dir string, toll scenario.TollPrice) (kpi.TripSource, error)
}

// Spec describes one sweep.
type Spec struct {
	// Grid is the toll prices to evaluate, in any order
	Grid []scenario.TollPrice

	// Params is the adoption model configuration
	Params adoption.Parameters

	// BaseFleet is the shared demand set, treated read-only
	BaseFleet []fleet.Vehicle

	// Window is the simulated time window
	Window scenario.Window

	// GridCostPerKWh is the electricity price in EUR per kWh
	GridCostPerKWh float64

	// Seed is the base random seed; each scenario derives its own from it
	Seed int64

	// ScenariosDir is where artifacts and simulator outputs live
	ScenariosDir string

	// NetworkFile is the network description referenced by artifacts
	NetworkFile string

	// Workers limits concurrent pipelines; values below 1 mean sequential
	Workers int
}

// Skipped records a toll price absent from the final table and why.
type Skipped struct {
	Toll   scenario.TollPrice `json:"toll_price_eur"`
	Reason string             `json:"reason"`
}

// Report is the outcome of a sweep. Results are sorted ascending by toll
// price regardless of completion order. An empty Results with a nonzero
// Requested count means every price failed; Requested zero means no
// prices were asked for.
type Report struct {
	RunID     string             `json:"run_id"`
	Requested int                `json:"requested"`
	Results   []kpi.Result       `json:"results"`
	Skipped   []Skipped          `json:"skipped,omitempty"`
	Targets   map[string]float64 `json:"adoption_targets"`
	Duration  time.Duration      `json:"duration"`
}

// Runner executes sweeps against a simulator.
type Runner struct {
	sim Simulator
}

// NewRunner creates a sweep runner.
func NewRunner(sim Simulator) *Runner {
	return &Runner{sim: sim}
}

// Run executes the sweep. Invalid parameters fail fast before any
// scenario work. A missing output skips its price; a malformed output
// yields a zeroed KPI row; a simulator failure aborts the whole sweep
// with the failing price identified.
func (r *Runner) Run(ctx context.Context, spec Spec) (*Report, error) {
	start := time.Now()

	if err := spec.Params.Validate(); err != nil {
		return nil, err
	}
	if spec.GridCostPerKWh < 0 {
		return nil, errors.InvalidParameters("grid cost rate is negative")
	}
	for _, toll := range spec.Grid {
		if toll < 0 {
			return nil, errors.Newf(errors.TypeInvalidParameters, "negative toll price %v in grid", toll)
		}
	}

	report := &Report{
		RunID:     uuid.New().String(),
		Requested: len(spec.Grid),
		Targets:   make(map[string]float64, len(spec.Grid)),
	}
	for _, toll := range spec.Grid {
		report.Targets[toll.Name()] = adoption.Share(float64(toll), spec.Params)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	workers := spec.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, toll := range spec.Grid {
		i, toll := i, toll
		g.Go(func() error {
			result, skip, err := r.runScenario(gctx, spec, toll, spec.Seed+int64(i))
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if skip != nil {
				report.Skipped = append(report.Skipped, *skip)
			} else {
				report.Results = append(report.Results, *result)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Toll < report.Results[j].Toll
	})
	sort.Slice(report.Skipped, func(i, j int) bool {
		return report.Skipped[i].Toll < report.Skipped[j].Toll
	})
	report.Duration = time.Since(start)

	if report.Requested > 0 && len(report.Results) == 0 {
		logging.Warn("sweep produced no results for any requested toll price",
			zap.Int("requested", report.Requested))
	}
	return report, nil
}

// runScenario executes one toll price's pipeline. It returns exactly one
// of a KPI result, a skip record, or a fatal error.
func (r *Runner) runScenario(ctx context.Context, spec Spec, toll scenario.TollPrice, seed int64) (*kpi.Result, *Skipped, error) {
	log := logging.With(zap.String("scenario", toll.Name()))

	artifact := fleet.Synthesize(spec.BaseFleet, toll, spec.Params, spec.Window, seed)
	log.Info("synthesized fleet",
		zap.Int("vehicles", len(artifact.Vehicles)),
		zap.Float64("target_ev_share", artifact.TargetShare),
		zap.Float64("realized_ev_share", artifact.EVShare()))

	cfgPath, err := r.sim.Prepare(spec.ScenariosDir, spec.NetworkFile, artifact)
	if err != nil {
		return nil, nil, errors.Wrapf(errors.TypeInternal, err, "preparing scenario %s", toll.Name())
	}

	if err := r.sim.Run(ctx, cfgPath); err != nil {
		// A crashed scenario aborts the whole sweep.
		return nil, nil, errors.Wrapf(errors.TypeSimulatorFailure, err, "simulation failed for %s", toll.Name())
	}

	src, err := r.sim.Output(spec.ScenariosDir, toll)
	if err != nil {
		if errors.IsType(err, errors.TypeMissingArtifact) {
			log.Warn("simulator output missing, skipping toll price", zap.Error(err))
			return nil, &Skipped{Toll: toll, Reason: err.Error()}, nil
		}
		return nil, nil, err
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}

	totals, err := kpi.Aggregate(src)
	if err != nil {
		// Malformed output degrades to an explicit zero row; the sweep
		// continues.
		log.Warn("trip stream malformed, reporting zeroed KPIs", zap.Error(err))
		totals = kpi.Totals{}
	}

	result := kpi.Compute(toll, spec.GridCostPerKWh, totals)
	log.Info("aggregated scenario",
		zap.Int("total_vehicles", result.TotalVehicles),
		zap.Float64("ev_share", result.EVShare),
		zap.Float64("total_co2_kg", result.TotalCO2Kg))
	return &result, nil, nil
}
