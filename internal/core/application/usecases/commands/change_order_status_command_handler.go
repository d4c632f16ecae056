package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/application/usecases/relay"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// ErrDriverNotAssignedToOrder is returned when a driver attempts to move an
// order that is not bound to them.
var ErrDriverNotAssignedToOrder = errors.New("driver is not assigned to this order")

// ChangeOrderStatusCommandHandler advances an order along its lifecycle.
// When the transition lands on a terminal status the bound driver is
// released in the same transaction, and the guarded updates on both rows
// turn concurrent transitions into conflicts instead of lost updates.
type ChangeOrderStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
	dispatcher services.Dispatcher
	notifier   *relay.Notifier
}

// NewChangeOrderStatusCommandHandler creates a handler for lifecycle transitions.
func NewChangeOrderStatusCommandHandler(uowFactory LifecycleUoWFactory, notifier *relay.Notifier) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDispatcher(),
		notifier:   notifier,
	}
}

// Handle processes the transition command. Drivers may only move the order
// currently assigned to them; staff may move any order. The transition, the
// history entry and any driver release commit together.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
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
	driverRepo := uow.DriverRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if command.ActorIsDriver() && !aggregate.IsAssignedTo(command.ActorID()) {
		return ErrDriverNotAssignedToOrder
	}

	var assignee *driver.Driver
	if driverID := aggregate.Driver(); driverID != nil {
		if assignee, err = driverRepo.Get(ctx, *driverID); err != nil {
			return err
		}
	}

	statusRead := aggregate.Status()
	now := time.Now().UTC()

	released, err := h.dispatcher.Transition(aggregate, assignee, command.NextStatus(), now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, statusRead); err != nil {
		return err
	}
	if released {
		if err = driverRepo.Update(ctx, assignee, driver.Busy); err != nil {
			return err
		}
	}

	previous := statusRead
	change, err := order.NewStatusChange(
		kernel.NewUUID(), aggregate.ID(), &previous, aggregate.Status(),
		command.ActorID(), command.ActorIsDriver(), command.Notes(), now,
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

	h.notifier.NotifyStatusChange(ctx, aggregate, previous)
	return nil
}
