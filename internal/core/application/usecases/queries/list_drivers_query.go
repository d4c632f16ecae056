package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/guard"
)

// ErrListDriversQueryIsNotConstructed is returned when the query was not
// created via NewListDriversQuery.
var ErrListDriversQueryIsNotConstructed = errors.New(
	"ListDriversQuery must be created via NewListDriversQuery constructor",
)

// ListDriversQuery retrieves all drivers, optionally filtered by
// availability status.
type ListDriversQuery struct {
	status *driver.Status

	guard guard.ConstructorGuard
}

// NewListDriversQuery creates a driver listing query.
func NewListDriversQuery(status *driver.Status) (ListDriversQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListDriversQuery{}, err
		}
	}

	return ListDriversQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDriversQuery) Validate() error {
	return q.guard.Validate(ErrListDriversQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q ListDriversQuery) Status() *driver.Status {
	return q.status
}

// DriverLocationResponse is the cached last position of a listed driver.
type DriverLocationResponse struct {
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}

// ListDriversQueryResponse is one row of a driver listing.
type ListDriversQueryResponse struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Status        string
	ActiveOrderID *string
	LastLocation  *DriverLocationResponse
}
