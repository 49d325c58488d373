package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apireport",
	Short: "Usage log reporting for the dashboard platform API",
	Long: `apireport pulls an organization's API usage logs from the dashboard
platform, aggregates them, and writes a timestamped CSV export
alongside ranked console tables.

Quick start:
  apireport report            # Interactive: prompts for the day range
  apireport report --days 7   # Non-interactive: last 7 days

Credentials come from APIREPORT_API_KEY and APIREPORT_ORG_ID, or a
.env file in the working directory.`,
	// Bare "apireport" runs the report; flags live on the subcommand.
	RunE: runReport,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "apireport.yaml", "config file path")
}
