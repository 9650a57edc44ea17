package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vdomctl",
		Short: "vdomctl drives a vdom reconciliation engine from the command line",
		Long: `vdomctl is a small companion CLI for the vdom reconciliation engine: it
serves a scene file over HTTP and a live WebSocket mutation stream, and lets
you step through a recorded patch cycle's mutations in a terminal UI.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
