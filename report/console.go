package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/jmcgrail/apireport/domain/usage"
)

// Render writes the three ranked frequency tables and the run summary
// to the console writer.
func (w *Writer) Render(rep usage.Report) {
	w.renderTally("Requests by HTTP method", "Method", rep.Methods)
	w.renderTally("Requests by response status", "Status", rep.Statuses)
	w.renderTally("Requests by endpoint", "Endpoint", rep.Endpoints)
	w.renderSummary(rep)
}

func (w *Writer) renderTally(title, label string, tally usage.Tally) {
	fmt.Fprintf(w.console, "\n%s\n", title)

	table := tablewriter.NewWriter(w.console)
	table.SetHeader([]string{"Rank", label, "Count"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})
	for i, rc := range tally.Ranked() {
		table.Append([]string{strconv.Itoa(i + 1), rc.Key, strconv.Itoa(rc.Count)})
	}
	table.Render()
}

func (w *Writer) renderSummary(rep usage.Report) {
	s := rep.Summary
	errPct := 0.0
	if s.TotalCount > 0 {
		errPct = float64(s.ErrorCount) / float64(s.TotalCount) * 100
	}

	fmt.Fprintf(w.console, "\nWindow:          %s to %s\n",
		rep.Window.Start.Format(time.RFC3339), rep.Window.End.Format(time.RFC3339))
	fmt.Fprintf(w.console, "Total requests:  %d\n", s.TotalCount)
	fmt.Fprintf(w.console, "Error responses: %d (%.1f%%)\n", s.ErrorCount, errPct)
	fmt.Fprintf(w.console, "Average latency: %d ms\n", s.AvgLatencyMs)
}
