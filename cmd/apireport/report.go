package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmcgrail/apireport/bootstrap"
	"github.com/jmcgrail/apireport/config"
	"github.com/jmcgrail/apireport/domain/usage"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch usage logs and write the report",
	Long: `Fetch the organization's API usage logs for the chosen window,
write a timestamped CSV export, and print ranked frequency tables
for methods, response statuses, and endpoints.

The day range comes from --days when given. Otherwise, on a
terminal, you are prompted for it; piped runs fall back to the
configured default.

Examples:
  apireport report
  apireport report --days 7
  apireport report --days 30 --output ./exports --quiet`,
	RunE: runReport,
}

var (
	reportDays   int
	reportOutput string
	reportQuiet  bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVar(&reportDays, "days", 0, "days of history to cover (skips the prompt)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "directory for the CSV export (overrides config)")
	reportCmd.Flags().BoolVar(&reportQuiet, "quiet", false, "suppress the console tables")
}

// configPath resolves the config file for this run. The default name
// is only used when the file actually exists; an explicit --config
// must exist or loading fails.
func configPath(cmd *cobra.Command) string {
	if cmd.Root().PersistentFlags().Changed("config") {
		return cfgFile
	}
	if _, err := os.Stat(cfgFile); err != nil {
		return ""
	}
	return cfgFile
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return err
	}
	if reportOutput != "" {
		cfg.Report.OutputDir = reportOutput
	}

	app := bootstrap.New(*cfg)
	logger := app.Logger.With().Str("run_id", app.IDs.New()).Logger()

	days, err := resolveDays(reportDays, cfg.Report.DefaultDays, cfg.Report.MaxDays,
		stdinIsTerminal(), os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	window, err := usage.NewWindow(app.Clock.Now(), days)
	if err != nil {
		return err
	}
	logger.Info().
		Int("days", days).
		Time("start", window.Start).
		Time("end", window.End).
		Msg("starting report run")

	ctx := context.Background()

	admins, err := app.Source.FetchAdmins(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("admin directory unavailable, exporting raw admin IDs")
		admins = nil
	}

	records, err := app.Source.FetchRequests(ctx, window)
	if err != nil {
		return fmt.Errorf("retrieve usage logs: %w", err)
	}
	logger.Info().Int("records", len(records)).Msg("retrieved usage logs")

	rep := usage.Aggregate(records, window)

	path, err := app.Writer.ExportCSV(records, admins)
	if err != nil {
		return err
	}

	if !reportQuiet {
		app.Writer.Render(rep)
	}
	fmt.Printf("\nExported %d records to %s\n", len(records), path)
	return nil
}
