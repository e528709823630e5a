// Package main is the entry point for the tollsweep CLI.
package main

import (
	"os"

	"tollsweep/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
