// Package main is the entry point for the doner CLI application.
package main

import (
	"os"

	"github.com/danielolaszy/doner/cmd"
	"github.com/danielolaszy/doner/internal/logging"
)

// main executes the root command and handles any errors that occur.
func main() {
	if err := cmd.Execute(); err != nil {
		logging.Debug("command execution failed", "error", err)
		os.Exit(1)
	}
}
