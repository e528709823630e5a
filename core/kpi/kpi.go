// Package kpi reduces simulator trip records into scenario KPIs. The
// aggregation is a single forward pass with O(1) auxiliary memory: trip
// records are folded into running sums and never retained.
package kpi

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"tollsweep/core/scenario"
)

// TripRecord is one simulator observation of a completed vehicle trip.
// Absent measurement fields decode as zero.
type TripRecord struct {
	// VehicleTypeHint is the declared type label, possibly stale or absent
	VehicleTypeHint string

	// CO2Abs is the absolute CO2 emission in mg
	CO2Abs float64

	// ElectricityAbs is the absolute electricity consumption in Wh
	ElectricityAbs float64
}

// TripSource yields trip records one at a time. Next returns io.EOF when
// the stream is exhausted; any other error means the stream is malformed.
type TripSource interface {
	Next() (*TripRecord, error)
}

// Totals are the four running aggregates of one scenario.
type Totals struct {
	TotalCO2Mg    float64
	TotalEnergyWh float64
	ICECount      int
	EVCount       int
}

// fold classifies one record and accumulates it. Measured quantities are
// authoritative over the declared label: CO2 wins, then electricity, and
// the type hint is only consulted when both measurements are zero (for
// example a vehicle that never moved). A record matching nothing is
// excluded from both counts.
func (t *Totals) fold(rec *TripRecord) {
	switch {
	case rec.CO2Abs > 0:
		t.TotalCO2Mg += rec.CO2Abs
		t.ICECount++
	case rec.ElectricityAbs > 0:
		t.TotalEnergyWh += rec.ElectricityAbs
		t.EVCount++
	case strings.Contains(rec.VehicleTypeHint, "ICE"):
		t.ICECount++
	case strings.Contains(rec.VehicleTypeHint, "EV"):
		t.EVCount++
	}
}

// Aggregate consumes the trip stream in one forward pass. A stream error
// yields zeroed totals together with the error, so a malformed scenario
// produces an explicit zero row instead of aborting a sweep.
func Aggregate(src TripSource) (Totals, error) {
	var totals Totals
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return totals, nil
		}
		if err != nil {
			return Totals{}, err
		}
		totals.fold(rec)
	}
}

// Result is the KPI record for one toll price.
type Result struct {
	Toll           scenario.TollPrice `json:"toll_price_eur"`
	EVShare        float64            `json:"ev_share"`
	TotalCO2Kg     float64            `json:"total_co2_kg"`
	GridCostEUR    decimal.Decimal    `json:"grid_cost_eur"`
	TollRevenueEUR decimal.Decimal    `json:"toll_revenue_eur"`
	TotalVehicles  int                `json:"total_vehicles"`
}

// Compute derives the KPI record for one scenario from its aggregates.
// rate is the grid cost in EUR per kWh.
func Compute(toll scenario.TollPrice, rate float64, totals Totals) Result {
	totalEnergyKWh := decimal.NewFromFloat(totals.TotalEnergyWh).Div(decimal.NewFromInt(1000))
	gridCost := totalEnergyKWh.Mul(decimal.NewFromFloat(rate))
	revenue := decimal.NewFromInt(int64(totals.ICECount)).Mul(decimal.NewFromFloat(float64(toll)))

	totalVehicles := totals.ICECount + totals.EVCount
	evShare := 0.0
	if totalVehicles > 0 {
		evShare = float64(totals.EVCount) / float64(totalVehicles)
	}

	return Result{
		Toll:           toll,
		EVShare:        evShare,
		TotalCO2Kg:     totals.TotalCO2Mg / 1_000_000,
		GridCostEUR:    gridCost,
		TollRevenueEUR: revenue,
		TotalVehicles:  totalVehicles,
	}
}
