package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"tollsweep/core/sensitivity"
	"tollsweep/core/sweep"
)

type markdownFormatter struct{}

func (f *markdownFormatter) Format() Format { return FormatMarkdown }

func (f *markdownFormatter) RenderSweep(w io.Writer, report *sweep.Report) error {
	fmt.Fprintf(w, "# Toll Sweep Report\n\n")
	fmt.Fprintf(w, "Run `%s` evaluated %d toll price(s) in %s.\n\n", report.RunID, report.Requested, report.Duration.Round(time.Millisecond))

	if len(report.Results) == 0 {
		if report.Requested == 0 {
			fmt.Fprintf(w, "No toll prices requested.\n")
		} else {
			fmt.Fprintf(w, "All requested prices failed; see the skipped table below.\n")
		}
	} else {
		fmt.Fprintf(w, "## Results\n\n")
		fmt.Fprintf(w, "| Toll Price (EUR) | EV Share | Total CO2 (kg) | Grid Cost (EUR) | Toll Revenue (EUR) | Total Vehicles |\n")
		fmt.Fprintf(w, "|---|---|---|---|---|---|\n")
		for _, r := range report.Results {
			fmt.Fprintf(w, "| %.1f | %.4f | %.2f | %s | %s | %d |\n",
				float64(r.Toll), r.EVShare, r.TotalCO2Kg,
				r.GridCostEUR.StringFixed(2), r.TollRevenueEUR.StringFixed(2), r.TotalVehicles)
		}
		fmt.Fprintln(w)
		f.writeHighlights(w, report)
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintf(w, "## Skipped\n\n")
		fmt.Fprintf(w, "| Toll Price (EUR) | Reason |\n")
		fmt.Fprintf(w, "|---|---|\n")
		for _, s := range report.Skipped {
			fmt.Fprintf(w, "| %.1f | %s |\n", float64(s.Toll), s.Reason)
		}
		fmt.Fprintln(w)
	}

	if len(report.Targets) > 0 {
		fmt.Fprintf(w, "## Adoption Targets\n\n")
		fmt.Fprintf(w, "| Scenario | Target EV Share |\n")
		fmt.Fprintf(w, "|---|---|\n")
		names := make([]string, 0, len(report.Targets))
		for name := range report.Targets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "| %s | %.4f |\n", name, report.Targets[name])
		}
		fmt.Fprintln(w)
	}
	return nil
}

// writeHighlights summarizes the extremes of the sweep the way an analyst
// would read them off the table.
func (f *markdownFormatter) writeHighlights(w io.Writer, report *sweep.Report) {
	lowCO2 := 0
	highRevenue := 0
	for i, r := range report.Results {
		if r.TotalCO2Kg < report.Results[lowCO2].TotalCO2Kg {
			lowCO2 = i
		}
		if r.TollRevenueEUR.GreaterThan(report.Results[highRevenue].TollRevenueEUR) {
			highRevenue = i
		}
	}
	fmt.Fprintf(w, "## Highlights\n\n")
	fmt.Fprintf(w, "- Lowest CO2: %.2f kg at toll %.1f EUR\n",
		report.Results[lowCO2].TotalCO2Kg, float64(report.Results[lowCO2].Toll))
	fmt.Fprintf(w, "- Highest toll revenue: %s EUR at toll %.1f EUR\n",
		report.Results[highRevenue].TollRevenueEUR.StringFixed(2), float64(report.Results[highRevenue].Toll))
	fmt.Fprintln(w)
}

func (f *markdownFormatter) RenderSensitivity(w io.Writer, analysis *sensitivity.Analysis) error {
	fmt.Fprintf(w, "# Adoption Sensitivity\n\n")
	fmt.Fprintf(w, "Reference toll %.1f EUR, perturbation %.0f%%.\n\n",
		analysis.ReferenceToll, analysis.Perturbation*100)

	fmt.Fprintf(w, "## Tornado\n\n")
	fmt.Fprintf(w, "| Parameter | Low Value | High Value | Low Delta | High Delta | Impact |\n")
	fmt.Fprintf(w, "|---|---|---|---|---|---|\n")
	for _, e := range analysis.Tornado {
		fmt.Fprintf(w, "| %s | %.4f | %.4f | %+.4f | %+.4f | %.4f |\n",
			e.Parameter, e.LowValue, e.HighValue, e.LowDelta, e.HighDelta, e.Impact)
	}
	fmt.Fprintln(w)

	for _, curve := range analysis.Curves {
		fmt.Fprintf(w, "## Curve: %s (%s = %.4f)\n\n", curve.Parameter, curve.Label, curve.Value)
		fmt.Fprintf(w, "| Toll (EUR) | EV Share |\n")
		fmt.Fprintf(w, "|---|---|\n")
		for _, pt := range curve.Points {
			fmt.Fprintf(w, "| %.1f | %.4f |\n", pt.Toll, pt.Share)
		}
		fmt.Fprintln(w)
	}
	return nil
}
