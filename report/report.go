// Package report renders aggregated usage reports: a timestamped CSV
// export on disk and ranked frequency tables on the console.
package report

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/jmcgrail/apireport/adapters/clock"
	"github.com/jmcgrail/apireport/ports"
)

// Writer produces the two report surfaces from one aggregated run.
type Writer struct {
	outputDir string
	prefix    string
	clock     ports.Clock
	console   io.Writer
	logger    zerolog.Logger
}

// WriterConfig configures a report writer.
type WriterConfig struct {
	// OutputDir receives the CSV export. Created if missing.
	OutputDir string

	// Prefix names the export file: <prefix>_<timestamp>.csv.
	Prefix string

	// Clock stamps the export filename.
	Clock ports.Clock

	// Console receives the rendered tables, os.Stdout when nil.
	Console io.Writer

	Logger zerolog.Logger
}

// NewWriter creates a report writer.
func NewWriter(cfg WriterConfig) *Writer {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "api_usage"
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}

	return &Writer{
		outputDir: outputDir,
		prefix:    prefix,
		clock:     clk,
		console:   console,
		logger:    cfg.Logger,
	}
}
