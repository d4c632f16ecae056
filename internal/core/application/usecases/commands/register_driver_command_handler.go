package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
)

// RegisterDriverCommandHandler registers new driver accounts. The password
// is hashed before the aggregate is constructed; the unique email constraint
// rejects duplicate registrations at commit.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	hasher     ports.PasswordHasher
}

// NewRegisterDriverCommandHandler creates a handler for driver registration.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory, hasher ports.PasswordHasher) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle processes the registration command. New drivers start offline.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, command RegisterDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	passwordHash, err := h.hasher.Hash(command.Password())
	if err != nil {
		return err
	}

	aggregate, err := driver.NewDriver(
		command.DriverID(), command.Name(), command.Email(),
		command.Phone(), passwordHash, time.Now().UTC(),
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

	if err = uow.DriverRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
