package usage

import (
	"strconv"
	"strings"
)

// Summary represents the roll-up across all records in a report (value type).
type Summary struct {
	TotalCount   int64
	ErrorCount   int64 // 4xx + 5xx responses
	AvgLatencyMs int64
}

// Report holds everything one run produces: the records in retrieval
// order, the three frequency tables, and the roll-up summary.
type Report struct {
	Window    Window
	Records   []Record
	Methods   Tally
	Statuses  Tally
	Endpoints Tally
	Summary   Summary
}

// Aggregate folds records into a report. Empty input yields empty
// tallies and a zero summary, not an error.
// This is a PURE function.
func Aggregate(records []Record, window Window) Report {
	r := Report{
		Window:    window,
		Records:   records,
		Methods:   Tally{},
		Statuses:  Tally{},
		Endpoints: Tally{},
	}

	var totalLatency int64
	for _, rec := range records {
		r.Methods.Add(rec.Method)
		r.Statuses.Add(strconv.Itoa(rec.ResponseCode))
		r.Endpoints.Add(NormalizeEndpoint(rec.Path))

		r.Summary.TotalCount++
		totalLatency += rec.LatencyMs
		if rec.IsError() {
			r.Summary.ErrorCount++
		}
	}

	if r.Summary.TotalCount > 0 {
		r.Summary.AvgLatencyMs = totalLatency / r.Summary.TotalCount
	}
	return r
}

// NormalizeEndpoint collapses purely numeric path segments to "{id}" so
// calls differing only in resource identifiers count as one endpoint.
// Only tally keys use this form; exported rows keep the raw path.
// This is a PURE function.
func NormalizeEndpoint(path string) string {
	if !strings.ContainsRune(path, '/') {
		return path
	}

	segs := strings.Split(path, "/")
	changed := false
	for i, s := range segs {
		if isNumeric(s) {
			segs[i] = "{id}"
			changed = true
		}
	}
	if !changed {
		return path
	}
	return strings.Join(segs, "/")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
