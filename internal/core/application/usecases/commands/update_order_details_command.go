package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrUpdateOrderDetailsCommandIsNotConstructed is returned when the command
// was not created via NewUpdateOrderDetailsCommand.
var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand replaces the delivery instructions and the
// estimated delivery time of an open order. Both values are taken as-is, so
// nil clears the field.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	deliveryInstructions  *string
	estimatedDeliveryTime *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand creates a detail update command for the given
// order.
func NewUpdateOrderDetailsCommand(
	orderID kernel.UUID,
	deliveryInstructions *string,
	estimatedDeliveryTime *time.Time,
) (UpdateOrderDetailsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	return UpdateOrderDetailsCommand{
		orderID:               orderID,
		deliveryInstructions:  deliveryInstructions,
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

// OrderID returns the target order id.
func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryInstructions returns the replacement instructions, nil to clear.
func (c UpdateOrderDetailsCommand) DeliveryInstructions() *string {
	return c.deliveryInstructions
}

// EstimatedDeliveryTime returns the replacement estimate, nil to clear.
func (c UpdateOrderDetailsCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}
