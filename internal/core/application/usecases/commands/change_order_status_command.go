package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

// ErrChangeOrderStatusCommandIsNotConstructed is returned when the command
// was not created via NewChangeOrderStatusCommand.
var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to advance an order along
// its lifecycle. Drivers may only move their own order; that ownership check
// lives in the handler because it needs the stored aggregate.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	nextStatus  order.Status
	actorID     kernel.UUID
	actorDriver bool
	notes       *string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to move orderID to
// nextStatus. actorDriver marks the principal as a driver, which restricts
// the transition to the order they are assigned to.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	nextStatus order.Status,
	actorID kernel.UUID,
	actorDriver bool,
	notes *string,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		nextStatus.Validate(),
		actorID.Validate(),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID:     orderID,
		nextStatus:  nextStatus,
		actorID:     actorID,
		actorDriver: actorDriver,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NextStatus returns the requested target status.
func (c ChangeOrderStatusCommand) NextStatus() order.Status {
	return c.nextStatus
}

// ActorID returns the principal requesting the transition.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorIsDriver reports whether the principal is a driver.
func (c ChangeOrderStatusCommand) ActorIsDriver() bool {
	return c.actorDriver
}

// Notes returns the optional note recorded on the history entry.
func (c ChangeOrderStatusCommand) Notes() *string {
	return c.notes
}
