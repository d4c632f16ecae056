package commands

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/relay"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers new delivery orders. The order row,
// its item lines and the creation history entry are written in a single
// transaction; the new-order relay event is published after commit.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	notifier   *relay.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory, notifier *relay.Notifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order creation command. The customer must exist; the
// order starts pending with no driver, and the creation is recorded in the
// status history with a nil previous status.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	items, err := command.buildItems()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(
		command.OrderID(),
		command.CustomerID(),
		command.DeliveryAddress(),
		command.DeliveryInstructions(),
		command.EstimatedDeliveryTime(),
		items,
		command.Total(),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CustomerRepository().Get(ctx, command.CustomerID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	change, err := order.NewStatusChange(
		kernel.NewUUID(), aggregate.ID(), nil, order.Pending,
		command.ActorID(), false, nil, now,
	)
	if err != nil {
		return err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, change); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyNewOrder(ctx, aggregate)
	return nil
}
