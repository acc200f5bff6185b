// Package main is the entry point for the tailtray CLI/TUI.
package main

import (
	"os"

	"github.com/tailtray/tailtray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
