// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/jmcgrail/apireport/domain/usage"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// External Service Ports
// -----------------------------------------------------------------------------

// UsageSource retrieves usage logs and operator metadata from the
// dashboard platform.
type UsageSource interface {
	// FetchRequests returns all usage log records inside the window,
	// in the order the platform returns them.
	FetchRequests(ctx context.Context, window usage.Window) ([]usage.Record, error)

	// FetchAdmins returns the organization's operator directory.
	FetchAdmins(ctx context.Context) (usage.AdminDirectory, error)
}
