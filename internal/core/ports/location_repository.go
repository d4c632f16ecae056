package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// LocationHistoryRepository defines the persistence contract for the
// append-only driver location trail. Location writes are high-frequency and
// deliberately run outside the unit of work so they never contend with
// lifecycle transactions.
type LocationHistoryRepository interface {
	// Append persists a location sample for a driver.
	Append(ctx context.Context, driverID kernel.UUID, sample driver.LocationSample) error

	// ListByDriver retrieves the most recent samples for a driver, newest
	// first, capped at limit.
	ListByDriver(ctx context.Context, driverID kernel.UUID, limit int) ([]driver.LocationSample, error)
}
