package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
)

// SweepStaleDriversCommandHandler takes silently gone drivers off the
// dispatch pool. Each driver is swept under its own guarded update, so a
// driver assigned concurrently with the sweep stays busy and the sweep
// simply skips it.
type SweepStaleDriversCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewSweepStaleDriversCommandHandler creates a handler for the staleness sweep.
func NewSweepStaleDriversCommandHandler(uowFactory DriverUoWFactory) SweepStaleDriversCommandHandler {
	return SweepStaleDriversCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep. Returns the number of drivers taken offline.
func (h SweepStaleDriversCommandHandler) Handle(ctx context.Context, command SweepStaleDriversCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	now := time.Now().UTC()
	cutoff := now.Add(-command.StaleAfter())

	stale, err := driverRepo.GetAvailableStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, aggregate := range stale {
		statusRead := aggregate.Status()
		if err = aggregate.ChangeStatus(driver.Offline, now); err != nil {
			continue
		}
		if err = driverRepo.Update(ctx, aggregate, statusRead); err != nil {
			return 0, err
		}
		swept++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return swept, nil
}
