package commands

import (
	"context"
	"time"
)

// ChangeDriverStatusCommandHandler applies self-service availability
// toggles. The guarded update carries the status the driver was read in, so
// a concurrent assignment flipping the driver to busy wins over the toggle.
type ChangeDriverStatusCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewChangeDriverStatusCommandHandler creates a handler for availability toggles.
func NewChangeDriverStatusCommandHandler(uowFactory DriverUoWFactory) ChangeDriverStatusCommandHandler {
	return ChangeDriverStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability toggle.
func (h ChangeDriverStatusCommandHandler) Handle(ctx context.Context, command ChangeDriverStatusCommand) error {
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

	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	statusRead := aggregate.Status()
	if err = aggregate.ChangeStatus(command.Target(), time.Now().UTC()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate, statusRead); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
