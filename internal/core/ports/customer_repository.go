package ports

import (
	"context"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer records.
// Customers are reference data owned by an upstream system; the dispatch
// core only needs existence checks and contact details for order reads.
type CustomerRepository interface {
	// Add persists a new customer record.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
