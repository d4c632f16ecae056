// Package ports defines the driven-side contracts of the application core:
// repositories, the unit of work, the event publisher and the password
// hasher. These interfaces keep the use case layer independent of the
// storage and transport adapters behind them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its item lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, guarded by the status
	// the caller read before mutating. The write only lands if the stored
	// row still carries expectedStatus; a concurrent transition surfaces
	// as an InvalidTransitionError so the caller can report the conflict.
	// Item lines are immutable after creation and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its item lines. Returns an ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
