// Package main provides the CLI entry point for Formulate.
package main

import (
	"os"

	"github.com/leapstack-labs/formulate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
