// Package bootstrap wires configuration into the application's
// components: logger, platform client, and report writer.
package bootstrap

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmcgrail/apireport/adapters/clock"
	"github.com/jmcgrail/apireport/adapters/dashboard"
	"github.com/jmcgrail/apireport/adapters/idgen"
	"github.com/jmcgrail/apireport/config"
	"github.com/jmcgrail/apireport/ports"
	"github.com/jmcgrail/apireport/report"
)

// App holds the wired components for one report run.
type App struct {
	Config config.Config
	Logger zerolog.Logger
	Clock  ports.Clock
	IDs    ports.IDGenerator
	Source ports.UsageSource
	Writer *report.Writer
}

// New wires an application from validated configuration.
func New(cfg config.Config) *App {
	logger := setupLogger(cfg.Logging)
	clk := clock.Real{}

	source := dashboard.NewClient(dashboard.ClientConfig{
		BaseURL:    cfg.Dashboard.BaseURL,
		APIKey:     cfg.Dashboard.APIKey,
		OrgID:      cfg.Dashboard.OrgID,
		Timeout:    cfg.Dashboard.Timeout,
		PerPage:    cfg.Dashboard.PerPage,
		MaxRetries: cfg.Dashboard.MaxRetries,
		Logger:     logger,
	})

	writer := report.NewWriter(report.WriterConfig{
		OutputDir: cfg.Report.OutputDir,
		Prefix:    cfg.Report.FilePrefix,
		Clock:     clk,
		Logger:    logger,
	})

	return &App{
		Config: cfg,
		Logger: logger,
		Clock:  clk,
		IDs:    idgen.UUID{},
		Source: source,
		Writer: writer,
	}
}

// setupLogger builds the zerolog logger from config. Logs go to
// stderr so stdout stays clean for the rendered report.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
