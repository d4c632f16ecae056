package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrChangeDriverStatusCommandIsNotConstructed is returned when the command
// was not created via NewChangeDriverStatusCommand.
var ErrChangeDriverStatusCommandIsNotConstructed = errors.New(
	"ChangeDriverStatusCommand must be created via NewChangeDriverStatusCommand constructor",
)

// ChangeDriverStatusCommand represents a driver toggling their own
// availability between available and offline.
type ChangeDriverStatusCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	target   driver.Status

	guard guard.ConstructorGuard
}

// NewChangeDriverStatusCommand creates a command to move driverID to the
// target status. The aggregate enforces that busy is never a valid target.
func NewChangeDriverStatusCommand(driverID kernel.UUID, target driver.Status) (ChangeDriverStatusCommand, error) {
	if err := errors.Join(
		driverID.Validate(),
		target.Validate(),
	); err != nil {
		return ChangeDriverStatusCommand{}, err
	}

	return ChangeDriverStatusCommand{
		driverID: driverID,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDriverStatusCommandIsNotConstructed)
}

// DriverID returns the driver changing status.
func (c ChangeDriverStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Target returns the requested availability status.
func (c ChangeDriverStatusCommand) Target() driver.Status {
	return c.target
}
