package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ProofOfDeliveryRepository defines the persistence contract for delivery
// proofs. At most one proof exists per order; the unique order constraint is
// enforced by storage and surfaces as an InvalidOperationError on duplicate.
type ProofOfDeliveryRepository interface {
	// Add persists a new proof of delivery.
	Add(ctx context.Context, proof *order.ProofOfDelivery) error

	// GetByOrder retrieves the proof submitted for an order, if any.
	// Returns an ObjectNotFoundError when no proof exists.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*order.ProofOfDelivery, error)
}
