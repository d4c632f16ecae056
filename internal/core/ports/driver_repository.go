package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver. The email column is unique; a duplicate
	// surfaces as an InvalidOperationError.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver, guarded by the status
	// the caller read before mutating. If the stored row no longer carries
	// expectedStatus the write is rejected with a DriverUnavailableError,
	// which protects the single-active-order invariant under concurrent
	// assignment.
	Update(ctx context.Context, aggregate *driver.Driver, expectedStatus driver.Status) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByEmail retrieves a driver by its unique email address.
	GetByEmail(ctx context.Context, email string) (*driver.Driver, error)

	// GetAllByStatus retrieves all drivers currently in the given status.
	GetAllByStatus(ctx context.Context, status driver.Status) ([]*driver.Driver, error)

	// GetAvailableStale retrieves available drivers whose last location
	// sample is older than the cutoff, or who never reported a position
	// since before the cutoff. Used by the stale-driver sweep job.
	GetAvailableStale(ctx context.Context, cutoff time.Time) ([]*driver.Driver, error)
}
