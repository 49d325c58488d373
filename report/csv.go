package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jmcgrail/apireport/domain/usage"
)

var csvHeader = []string{
	"timestamp", "source_ip", "user_agent", "method",
	"path", "query", "status", "latency_ms", "admin",
}

// ExportCSV writes every record to a timestamped file under the output
// directory and returns its path. Admin IDs resolve to display names
// through the directory; unknown IDs pass through raw. A zero-record
// run still produces a file with the header row.
func (w *Writer) ExportCSV(records []usage.Record, admins usage.AdminDirectory) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.csv", w.prefix, w.clock.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(w.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	cw := csv.NewWriter(f)
	cw.Write(csvHeader)
	for _, rec := range records {
		cw.Write([]string{
			rec.Timestamp,
			rec.SourceIP,
			rec.UserAgent,
			rec.Method,
			rec.Path,
			rec.QueryString,
			strconv.Itoa(rec.ResponseCode),
			strconv.FormatInt(rec.LatencyMs, 10),
			admins.DisplayName(rec.AdminID),
		})
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}

	w.logger.Info().
		Str("path", path).
		Int("records", len(records)).
		Msg("wrote CSV export")

	return path, nil
}
