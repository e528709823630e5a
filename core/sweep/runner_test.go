package sweep

import (
	"context"
	"fmt"
	"io"
	"sort"
	"testing"

	"tollsweep/core/adoption"
	"tollsweep/core/fleet"
	"tollsweep/core/kpi"
	"tollsweep/core/scenario"
	"tollsweep/internal/errors"
)

// fakeSimulator implements Simulator in memory. Behavior per toll price is
// scripted through the maps.
type fakeSimulator struct {
	failRun     map[scenario.TollPrice]bool
	missingOut  map[scenario.TollPrice]bool
	malformed   map[scenario.TollPrice]bool
	tripsByToll map[scenario.TollPrice][]kpi.TripRecord
}

func (f *fakeSimulator) Prepare(dir, networkFile string, artifact *fleet.Artifact) (string, error) {
	return fmt.Sprintf("%s/%s", dir, artifact.Toll.ConfigFile()), nil
}

func (f *fakeSimulator) Run(ctx context.Context, configPath string) error {
	for toll, fail := range f.failRun {
		if fail && configPath == fmt.Sprintf("scenarios/%s", toll.ConfigFile()) {
			return errors.SimulatorFailure("crash", nil)
		}
	}
	return nil
}

func (f *fakeSimulator) Output(dir string, toll scenario.TollPrice) (kpi.TripSource, error) {
	if f.missingOut[toll] {
		return nil, errors.MissingArtifact(toll.TripinfoFile())
	}
	return &fakeSource{records: f.tripsByToll[toll], malformed: f.malformed[toll]}, nil
}

type fakeSource struct {
	records   []kpi.TripRecord
	pos       int
	malformed bool
	closed    bool
}

func (s *fakeSource) Next() (*kpi.TripRecord, error) {
	if s.pos >= len(s.records) {
		if s.malformed {
			return nil, errors.MalformedInput("truncated stream", io.ErrUnexpectedEOF)
		}
		return nil, io.EOF
	}
	rec := &s.records[s.pos]
	s.pos++
	return rec, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func trips(ice, ev int) []kpi.TripRecord {
	records := make([]kpi.TripRecord, 0, ice+ev)
	for i := 0; i < ice; i++ {
		records = append(records, kpi.TripRecord{CO2Abs: 1000})
	}
	for i := 0; i < ev; i++ {
		records = append(records, kpi.TripRecord{ElectricityAbs: 500})
	}
	return records
}

func baseSpec(grid ...scenario.TollPrice) Spec {
	return Spec{
		Grid:           grid,
		Params:         adoption.DefaultParameters(),
		BaseFleet:      []fleet.Vehicle{{ID: "0", From: "a", To: "b"}},
		Window:         scenario.DefaultWindow(),
		GridCostPerKWh: 0.20,
		Seed:           1,
		ScenariosDir:   "scenarios",
		NetworkFile:    "net.xml",
		Workers:        2,
	}
}

func TestRunSortsResultsByToll(t *testing.T) {
	sim := &fakeSimulator{tripsByToll: map[scenario.TollPrice][]kpi.TripRecord{
		0.5: trips(8, 2), 2.5: trips(5, 5), 1.5: trips(6, 4),
	}}

	// Deliberately unsorted grid.
	report, err := NewRunner(sim).Run(context.Background(), baseSpec(2.5, 0.5, 1.5))
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(report.Results))
	}
	if !sort.SliceIsSorted(report.Results, func(i, j int) bool {
		return report.Results[i].Toll < report.Results[j].Toll
	}) {
		t.Fatalf("results not sorted by toll: %+v", report.Results)
	}
	if report.RunID == "" {
		t.Error("report has no run ID")
	}
	if report.Requested != 3 {
		t.Errorf("requested = %d, want 3", report.Requested)
	}
}

func TestRunInvalidParametersFailFast(t *testing.T) {
	spec := baseSpec(1.0)
	spec.Params.Steepness = -1

	_, err := NewRunner(&fakeSimulator{}).Run(context.Background(), spec)
	if !errors.IsType(err, errors.TypeInvalidParameters) {
		t.Fatalf("expected InvalidParameters, got %v", err)
	}
}

func TestRunNegativeTollRejected(t *testing.T) {
	_, err := NewRunner(&fakeSimulator{}).Run(context.Background(), baseSpec(-1.0))
	if !errors.IsType(err, errors.TypeInvalidParameters) {
		t.Fatalf("expected InvalidParameters, got %v", err)
	}
}

func TestRunMissingOutputSkipsPrice(t *testing.T) {
	sim := &fakeSimulator{
		missingOut:  map[scenario.TollPrice]bool{1.5: true},
		tripsByToll: map[scenario.TollPrice][]kpi.TripRecord{0.5: trips(9, 1), 2.5: trips(4, 6)},
	}

	report, err := NewRunner(sim).Run(context.Background(), baseSpec(0.5, 1.5, 2.5))
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	for _, result := range report.Results {
		if result.Toll == 1.5 {
			t.Fatal("skipped price present in results")
		}
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Toll != 1.5 {
		t.Fatalf("skipped = %+v, want toll 1.5", report.Skipped)
	}
	if report.Skipped[0].Reason == "" {
		t.Error("skip record has no reason")
	}
}

func TestRunSimulatorFailureIsFatal(t *testing.T) {
	sim := &fakeSimulator{
		failRun:     map[scenario.TollPrice]bool{1.5: true},
		tripsByToll: map[scenario.TollPrice][]kpi.TripRecord{0.5: trips(9, 1)},
	}

	_, err := NewRunner(sim).Run(context.Background(), baseSpec(0.5, 1.5))
	if !errors.IsType(err, errors.TypeSimulatorFailure) {
		t.Fatalf("expected SimulatorFailure, got %v", err)
	}
}

func TestRunMalformedOutputYieldsZeroRow(t *testing.T) {
	sim := &fakeSimulator{
		malformed:   map[scenario.TollPrice]bool{1.5: true},
		tripsByToll: map[scenario.TollPrice][]kpi.TripRecord{0.5: trips(9, 1)},
	}

	report, err := NewRunner(sim).Run(context.Background(), baseSpec(0.5, 1.5))
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	zeroed := report.Results[1]
	if zeroed.Toll != 1.5 {
		t.Fatalf("second row toll = %v, want 1.5", zeroed.Toll)
	}
	if zeroed.TotalVehicles != 0 || zeroed.TotalCO2Kg != 0 || !zeroed.TollRevenueEUR.IsZero() {
		t.Fatalf("malformed scenario row not zeroed: %+v", zeroed)
	}
}

func TestRunEmptyGrid(t *testing.T) {
	report, err := NewRunner(&fakeSimulator{}).Run(context.Background(), baseSpec())
	if err != nil {
		t.Fatal(err)
	}
	if report.Requested != 0 || len(report.Results) != 0 {
		t.Fatalf("empty grid report = %+v", report)
	}
}

func TestRunTargetsRecorded(t *testing.T) {
	sim := &fakeSimulator{tripsByToll: map[scenario.TollPrice][]kpi.TripRecord{2.5: trips(1, 1)}}

	report, err := NewRunner(sim).Run(context.Background(), baseSpec(2.5))
	if err != nil {
		t.Fatal(err)
	}

	target, ok := report.Targets["toll_2_5"]
	if !ok {
		t.Fatalf("no adoption target recorded for toll_2_5: %v", report.Targets)
	}
	want := adoption.Share(2.5, adoption.DefaultParameters())
	if target != want {
		t.Fatalf("target = %v, want %v", target, want)
	}
}
