// Package main is the entry point for the tailtrayd tray applet.
package main

import (
	"log"
	"os"

	"github.com/tailtray/tailtray/internal/daemon/cmd"
)

func main() {
	log.SetPrefix("[tailtrayd] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
