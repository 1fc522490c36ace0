// Package main is the entry point for mpdlink, a command-line client
// for the Music Player Daemon.
package main

import (
	"fmt"
	"os"

	"github.com/fluffle/mpdlink/internal/cli/command"
)

func main() {
	if err := command.App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
