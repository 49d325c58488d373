// Package usage provides usage log types and aggregation functions.
// All functions are pure - no side effects.
package usage

// Record represents a single logged platform API call (immutable value type).
// Timestamp keeps the ISO 8601 string exactly as the platform returned it.
type Record struct {
	Timestamp    string
	AdminID      string
	Method       string
	Path         string
	QueryString  string
	SourceIP     string
	UserAgent    string
	ResponseCode int
	LatencyMs    int64
}

// IsError reports whether the call failed (4xx or 5xx response).
func (r Record) IsError() bool {
	return r.ResponseCode >= 400
}

// AdminDirectory maps operator IDs to display names (value type).
type AdminDirectory map[string]string

// DisplayName resolves id to the operator's name. Unknown IDs pass
// through raw so the export never loses the identity.
func (d AdminDirectory) DisplayName(id string) string {
	if name, ok := d[id]; ok && name != "" {
		return name
	}
	return id
}
