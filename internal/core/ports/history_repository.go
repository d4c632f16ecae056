package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// StatusHistoryRepository defines the persistence contract for the
// append-only order status audit trail. Rows are never updated or deleted.
type StatusHistoryRepository interface {
	// Append persists a status change record.
	Append(ctx context.Context, change *order.StatusChange) error

	// ListByOrder retrieves the full audit trail of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusChange, error)
}
