package commands

import (
	"context"
	"time"
)

// UpdateOrderDetailsCommandHandler replaces the mutable detail fields of an
// open order. Closed orders reject the change; a concurrent status
// transition makes the guarded update lose, so details never land on a row
// whose lifecycle moved underneath the read.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderDetailsCommandHandler creates a handler for order detail
// updates.
func NewUpdateOrderDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{uowFactory: uowFactory}
}

// Handle processes the detail update.
func (h UpdateOrderDetailsCommandHandler) Handle(ctx context.Context, command UpdateOrderDetailsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	statusRead := aggregate.Status()
	if err = aggregate.UpdateDetails(
		command.DeliveryInstructions(), command.EstimatedDeliveryTime(), time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, statusRead); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
