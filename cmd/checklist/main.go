// Package main is the checklist entry point.
package main

import (
	"os"

	"github.com/Makepad-fr/checklist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
