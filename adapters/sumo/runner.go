package sumo

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"tollsweep/internal/errors"
)

// Runner invokes the external simulator binary.
type Runner struct {
	// Binary is the simulator executable, resolved through PATH when not
	// absolute.
	Binary string

	// ExtraArgs are appended to every invocation.
	ExtraArgs []string
}

// NewRunner creates a process runner for the given binary.
func NewRunner(binary string) *Runner {
	return &Runner{
		Binary:    binary,
		ExtraArgs: []string{"--xml-validation", "never"},
	}
}

// Simulate runs one scenario to completion. The working directory is the
// configuration file's directory so relative paths inside it resolve. A
// nonzero exit is a SimulatorFailure; KPI numbers for a crashed scenario
// would be meaningless, so the caller treats this as fatal to the sweep.
func (r *Runner) Simulate(ctx context.Context, cfgPath string) error {
	args := append([]string{"-c", filepath.Base(cfgPath)}, r.ExtraArgs...)
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = filepath.Dir(cfgPath)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return errors.SimulatorFailure("simulator exited abnormally", err).
			WithContext("config", cfgPath).
			WithContext("output", tail(output.String(), 2048))
	}
	return nil
}

// tail returns at most n trailing bytes of s, starting at a line boundary
// when possible.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	if i := strings.IndexByte(s, '\n'); i >= 0 && i+1 < len(s) {
		return s[i+1:]
	}
	return s
}
