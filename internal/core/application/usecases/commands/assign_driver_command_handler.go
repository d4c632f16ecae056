package commands

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/relay"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// AssignDriverCommandHandler binds a driver to a pending order. Four writes
// land atomically: the order row, the driver row, the history entry, and the
// guarded status checks on both rows catch concurrent assignment races.
type AssignDriverCommandHandler struct {
	uowFactory LifecycleUoWFactory
	dispatcher services.Dispatcher
	notifier   *relay.Notifier
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory LifecycleUoWFactory, notifier *relay.Notifier) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDispatcher(),
		notifier:   notifier,
	}
}

// Handle processes the assignment command. The order must be pending and
// the driver available; both repository updates carry the status the
// aggregates were read in, so a concurrent assignment of either side aborts
// the transaction with a conflict error.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) error {
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
	assignee, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	orderStatusRead := aggregate.Status()
	driverStatusRead := assignee.Status()

	now := time.Now().UTC()
	if err = h.dispatcher.Assign(aggregate, assignee, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, orderStatusRead); err != nil {
		return err
	}
	if err = driverRepo.Update(ctx, assignee, driverStatusRead); err != nil {
		return err
	}

	previous := orderStatusRead
	change, err := order.NewStatusChange(
		kernel.NewUUID(), aggregate.ID(), &previous, aggregate.Status(),
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

	h.notifier.NotifyDriverAssigned(ctx, aggregate, assignee)
	return nil
}
