package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "themisto",
	Short: "Themisto - authorization enforcement runtime",
	Long: `Themisto is an authorization enforcement runtime for repository operations.

It enforces attribute-based authorization in front of a pluggable decision
engine, providing:
  - A single enforcement gateway with deny-biased decision aggregation
  - Per-request policy composition from repository-wide, generated, and
    per-resource policy documents
  - Hot-swappable decision engine lifecycle with zero-downtime reloads
  - A durable audit trail of enforcement decisions
  - Prometheus metrics and structured logging`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
