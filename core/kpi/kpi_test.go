package kpi

import (
	"io"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

// sliceSource yields records from a slice, one forward pass.
type sliceSource struct {
	records []TripRecord
	pos     int
	err     error
}

func (s *sliceSource) Next() (*TripRecord, error) {
	if s.pos >= len(s.records) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	rec := &s.records[s.pos]
	s.pos++
	return rec, nil
}

func TestClassificationPrecedence(t *testing.T) {
	// Measured CO2 beats measured electricity beats the declared label.
	totals, err := Aggregate(&sliceSource{records: []TripRecord{
		{VehicleTypeHint: "EV", CO2Abs: 5, ElectricityAbs: 3},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if totals.ICECount != 1 || totals.EVCount != 0 {
		t.Fatalf("record with co2=5, electricity=3 classified ICE=%d EV=%d, want 1,0", totals.ICECount, totals.EVCount)
	}
	if totals.TotalCO2Mg != 5 || totals.TotalEnergyWh != 0 {
		t.Fatalf("accumulated co2=%v energy=%v, want 5,0", totals.TotalCO2Mg, totals.TotalEnergyWh)
	}
}

func TestClassificationHintFallback(t *testing.T) {
	totals, err := Aggregate(&sliceSource{records: []TripRecord{
		{VehicleTypeHint: "EV_urban"},
		{VehicleTypeHint: "ICE"},
		{VehicleTypeHint: "bicycle"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if totals.EVCount != 1 {
		t.Errorf("EV count = %d, want 1 (hint EV_urban)", totals.EVCount)
	}
	if totals.ICECount != 1 {
		t.Errorf("ICE count = %d, want 1 (hint ICE)", totals.ICECount)
	}
	// The unrecognized hint contributes to neither count.
	if totals.ICECount+totals.EVCount != 2 {
		t.Errorf("total classified = %d, want 2", totals.ICECount+totals.EVCount)
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	records := []TripRecord{
		{CO2Abs: 100}, {CO2Abs: 250}, {ElectricityAbs: 40},
		{ElectricityAbs: 60}, {VehicleTypeHint: "ICE"}, {VehicleTypeHint: "EV"},
		{VehicleTypeHint: "none"}, {CO2Abs: 5, ElectricityAbs: 5},
	}

	want, err := Aggregate(&sliceSource{records: records})
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]TripRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := Aggregate(&sliceSource{records: shuffled})
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("trial %d: totals %+v differ from %+v after shuffle", trial, got, want)
		}
	}
}

func TestAggregateMalformedStream(t *testing.T) {
	totals, err := Aggregate(&sliceSource{
		records: []TripRecord{{CO2Abs: 100}, {CO2Abs: 200}},
		err:     io.ErrUnexpectedEOF,
	})
	if err == nil {
		t.Fatal("expected error from malformed stream")
	}
	if totals != (Totals{}) {
		t.Fatalf("totals after stream error = %+v, want zeroed", totals)
	}
}

func TestAggregateEmptyStream(t *testing.T) {
	totals, err := Aggregate(&sliceSource{})
	if err != nil {
		t.Fatal(err)
	}
	if totals != (Totals{}) {
		t.Fatalf("totals of empty stream = %+v", totals)
	}
}

func TestComputeConcreteCase(t *testing.T) {
	totals := Totals{
		TotalCO2Mg:    2_000_000,
		TotalEnergyWh: 500_000,
		ICECount:      800,
		EVCount:       200,
	}

	result := Compute(2.0, 0.20, totals)

	if result.TotalCO2Kg != 2.0 {
		t.Errorf("total CO2 = %v kg, want 2.0", result.TotalCO2Kg)
	}
	if !result.GridCostEUR.Equal(decimal.NewFromInt(100)) {
		t.Errorf("grid cost = %s EUR, want 100", result.GridCostEUR)
	}
	if !result.TollRevenueEUR.Equal(decimal.NewFromInt(1600)) {
		t.Errorf("toll revenue = %s EUR, want 1600", result.TollRevenueEUR)
	}
	if result.EVShare != 0.2 {
		t.Errorf("EV share = %v, want 0.2", result.EVShare)
	}
	if result.TotalVehicles != 1000 {
		t.Errorf("total vehicles = %d, want 1000", result.TotalVehicles)
	}
}

func TestComputeEmptyScenario(t *testing.T) {
	result := Compute(3.0, 0.20, Totals{})

	if result.EVShare != 0 {
		t.Errorf("EV share of empty scenario = %v, want 0", result.EVShare)
	}
	if result.TotalVehicles != 0 {
		t.Errorf("total vehicles = %d, want 0", result.TotalVehicles)
	}
	if !result.TollRevenueEUR.IsZero() || !result.GridCostEUR.IsZero() {
		t.Errorf("money fields of empty scenario not zero: %s, %s", result.TollRevenueEUR, result.GridCostEUR)
	}
}
