package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"tollsweep/core/sensitivity"
	"tollsweep/core/sweep"
)

type csvFormatter struct{}

func (f *csvFormatter) Format() Format { return FormatCSV }

func (f *csvFormatter) RenderSweep(w io.Writer, report *sweep.Report) error {
	cw := csv.NewWriter(w)

	header := []string{"Toll Price (EUR)", "EV Share", "Total CO2 (kg)", "Grid Cost (EUR)", "Toll Revenue (EUR)", "Total Vehicles"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range report.Results {
		row := []string{
			strconv.FormatFloat(float64(r.Toll), 'f', 1, 64),
			strconv.FormatFloat(r.EVShare, 'f', 6, 64),
			strconv.FormatFloat(r.TotalCO2Kg, 'f', 6, 64),
			r.GridCostEUR.StringFixed(2),
			r.TollRevenueEUR.StringFixed(2),
			strconv.Itoa(r.TotalVehicles),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (f *csvFormatter) RenderSensitivity(w io.Writer, analysis *sensitivity.Analysis) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Parameter", "Low Value", "High Value", "Low Delta", "High Delta", "Impact"}); err != nil {
		return err
	}
	for _, e := range analysis.Tornado {
		row := []string{
			e.Parameter,
			strconv.FormatFloat(e.LowValue, 'f', 6, 64),
			strconv.FormatFloat(e.HighValue, 'f', 6, 64),
			strconv.FormatFloat(e.LowDelta, 'f', 6, 64),
			strconv.FormatFloat(e.HighDelta, 'f', 6, 64),
			strconv.FormatFloat(e.Impact, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	// Curves appended below the tornado table, one row per sample.
	for _, curve := range analysis.Curves {
		for _, pt := range curve.Points {
			row := []string{
				fmt.Sprintf("curve:%s:%s", curve.Parameter, curve.Label),
				strconv.FormatFloat(curve.Value, 'f', 6, 64),
				strconv.FormatFloat(pt.Toll, 'f', 2, 64),
				strconv.FormatFloat(pt.Share, 'f', 6, 64),
				"", "",
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
