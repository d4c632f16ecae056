package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrAssignDriverCommandIsNotConstructed is returned when the command was
// not created via NewAssignDriverCommand.
var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a staff request to bind a specific driver
// to a pending order.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign driverID to orderID.
// actorID is the staff principal recorded on the history entry.
func NewAssignDriverCommand(orderID, driverID, actorID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		driverID.Validate(),
		actorID.Validate(),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		orderID:  orderID,
		driverID: driverID,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the driver to bind.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// ActorID returns the staff principal performing the assignment.
func (c AssignDriverCommand) ActorID() kernel.UUID {
	return c.actorID
}
