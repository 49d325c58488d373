package usage

import (
	"fmt"
	"time"
)

// Window is the half-open query interval [Start, End) (value type).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow derives the window ending at now and reaching the given
// number of whole 24-hour days back. days must be at least 1.
// This is a PURE function.
func NewWindow(now time.Time, days int) (Window, error) {
	if days < 1 {
		return Window{}, fmt.Errorf("days must be at least 1, got %d", days)
	}
	return Window{
		Start: now.Add(-time.Duration(days) * 24 * time.Hour),
		End:   now,
	}, nil
}
