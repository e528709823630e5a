// Package scenario defines scenario identity and naming. A scenario is the
// complete unit of work for one toll price; the toll price itself is the
// scenario key and must round-trip through a filename-safe token.
package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"tollsweep/internal/errors"
)

// TollPrice is a nonnegative per-trip charge in EUR. It identifies a
// scenario within a sweep.
type TollPrice float64

// Token encodes the price as a filename-safe token at one digit of
// precision, replacing the decimal point with an underscore: 1.5 -> "1_5".
func (p TollPrice) Token() string {
	return strings.ReplaceAll(strconv.FormatFloat(float64(p), 'f', 1, 64), ".", "_")
}

// String formats the price for display.
func (p TollPrice) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// ParseToken decodes a filename token back into a toll price.
// ParseToken(p.Token()) == p for every price in the supported grid.
func ParseToken(token string) (TollPrice, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, "_", "."), 64)
	if err != nil {
		return 0, errors.Wrapf(errors.TypeParsing, err, "invalid toll token %q", token)
	}
	if v < 0 {
		return 0, errors.Newf(errors.TypeParsing, "negative toll in token %q", token)
	}
	return TollPrice(v), nil
}

// Name returns the canonical scenario name for a toll price, e.g. "toll_1_5".
func (p TollPrice) Name() string {
	return "toll_" + p.Token()
}

// RoutesFile returns the synthesized-fleet artifact filename.
func (p TollPrice) RoutesFile() string {
	return fmt.Sprintf("routes_%s.xml", p.Name())
}

// ConfigFile returns the simulator configuration filename.
func (p TollPrice) ConfigFile() string {
	return fmt.Sprintf("config_%s.sumo.cfg", p.Name())
}

// TripinfoFile returns the simulator-output artifact filename.
func (p TollPrice) TripinfoFile() string {
	return fmt.Sprintf("tripinfo_%s.xml", p.Name())
}

// Window is the simulated time window carried into each scenario
// configuration. Seconds since midnight, as the simulator expects.
type Window struct {
	Begin      int `json:"begin" yaml:"begin"`
	End        int `json:"end" yaml:"end"`
	StepLength int `json:"step_length" yaml:"step_length"`
}

// DefaultWindow is the 09:00-11:00 morning window used by the reference
// demand set.
func DefaultWindow() Window {
	return Window{Begin: 32400, End: 39600, StepLength: 1}
}

// Duration returns the window length in seconds.
func (w Window) Duration() int {
	return w.End - w.Begin
}
