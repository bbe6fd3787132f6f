// Package main is the entry point for the printcost CLI.
package main

import (
	"os"

	"printcost/cmd/cli/cmd"
	"printcost/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
