// Package main is the entry point for programme-cost CLI.
package main

import (
	"os"

	"programme-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
