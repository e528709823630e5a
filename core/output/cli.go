package output

import (
	"fmt"
	"io"
	"time"

	"tollsweep/core/sensitivity"
	"tollsweep/core/sweep"
)

// Terminal colors, matching the rest of the tooling's output style.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

type cliFormatter struct{}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) RenderSweep(w io.Writer, report *sweep.Report) error {
	fmt.Fprintf(w, "%sToll sweep results%s  %s(run %s, %s)%s\n\n",
		bold, reset, dim, report.RunID, report.Duration.Round(time.Millisecond), reset)

	if report.Requested == 0 {
		fmt.Fprintln(w, "No toll prices requested.")
		return nil
	}
	if len(report.Results) == 0 {
		fmt.Fprintf(w, "%sAll %d requested toll prices failed; no results.%s\n", red, report.Requested, reset)
		return f.renderSkipped(w, report)
	}

	fmt.Fprintf(w, "%s%10s %10s %14s %14s %16s %10s%s\n",
		bold, "Toll (EUR)", "EV Share", "CO2 (kg)", "Grid (EUR)", "Revenue (EUR)", "Vehicles", reset)
	for _, r := range report.Results {
		fmt.Fprintf(w, "%10s %s%9.1f%%%s %14.2f %14s %16s %10d\n",
			r.Toll.String(),
			green, r.EVShare*100, reset,
			r.TotalCO2Kg,
			r.GridCostEUR.StringFixed(2),
			r.TollRevenueEUR.StringFixed(2),
			r.TotalVehicles)
	}
	return f.renderSkipped(w, report)
}

func (f *cliFormatter) renderSkipped(w io.Writer, report *sweep.Report) error {
	for _, s := range report.Skipped {
		fmt.Fprintf(w, "%sskipped toll %s: %s%s\n", yellow, s.Toll.String(), s.Reason, reset)
	}
	return nil
}

func (f *cliFormatter) RenderSensitivity(w io.Writer, analysis *sensitivity.Analysis) error {
	fmt.Fprintf(w, "%sParameter sensitivity%s  %s(reference toll %.2f EUR, share %.4f)%s\n\n",
		bold, reset, dim, analysis.ReferenceToll, analysis.ReferenceShare, reset)

	fmt.Fprintf(w, "%s%-16s %12s %12s %12s %12s %10s%s\n",
		bold, "Parameter", "Low", "High", "Low Delta", "High Delta", "Impact", reset)
	for i, e := range analysis.Tornado {
		marker := "  "
		if i == 0 {
			marker = cyan + "> " + reset
		}
		fmt.Fprintf(w, "%s%-14s %12.4f %12.4f %+12.4f %+12.4f %10.4f\n",
			marker, e.Parameter, e.LowValue, e.HighValue, e.LowDelta, e.HighDelta, e.Impact)
	}
	return nil
}
