package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrListOrdersQueryIsNotConstructed is returned when the query was not
// created via NewListOrdersQuery.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Pagination bounds for order listings.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListOrdersQuery retrieves a page of orders, optionally filtered by
// status, driver or customer.
type ListOrdersQuery struct {
	status     *order.Status
	driverID   *kernel.UUID
	customerID *kernel.UUID
	limit      int
	offset     int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. A zero limit falls back to the
// default page size; limits above the cap are rejected.
func NewListOrdersQuery(
	status *order.Status,
	driverID, customerID *kernel.UUID,
	limit, offset int,
) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if limit < 0 || limit > maxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("limit")
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("offset")
	}

	return ListOrdersQuery{
		status:     status,
		driverID:   driverID,
		customerID: customerID,
		limit:      limit,
		offset:     offset,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// DriverID returns the optional driver filter.
func (q ListOrdersQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// CustomerID returns the optional customer filter.
func (q ListOrdersQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q ListOrdersQuery) Offset() int {
	return q.offset
}

// ListOrdersQueryResponse is one row of an order listing.
type ListOrdersQueryResponse struct {
	ID              string
	CustomerID      string
	DriverID        *string
	Status          string
	DeliveryAddress string
	Total           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
