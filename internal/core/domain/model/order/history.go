package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrStatusChangeIsNotConstructed is returned when using a StatusChange that
// was not created via NewStatusChange or RestoreStatusChange.
var ErrStatusChangeIsNotConstructed = errors.New(
	"StatusChange must be created via NewStatusChange or RestoreStatusChange constructor")

// StatusChange is one entry of the append-only order status ledger. Each
// entry records who moved an order from which status to which, when, and
// optionally why. Entries are never mutated or deleted; concatenating the
// (previous, next) pairs of an order's entries in commit order reconstructs
// its full status timeline.
//
// The previous status is nil only for the creation entry of an order.
type StatusChange struct {
	id       kernel.UUID
	orderID  kernel.UUID
	previous *Status
	next     Status
	actorID  kernel.UUID
	isDriver bool
	notes    *string

	occurredAt time.Time

	isConstructed bool
}

// NewStatusChange creates a ledger entry for a transition of orderID from
// previous to next performed by actorID. previous is nil for the entry
// written at order creation.
func NewStatusChange(
	id kernel.UUID,
	orderID kernel.UUID,
	previous *Status,
	next Status,
	actorID kernel.UUID,
	isDriver bool,
	notes *string,
	occurredAt time.Time,
) (*StatusChange, error) {
	change := &StatusChange{
		isDriver:      isDriver,
		notes:         notes,
		occurredAt:    occurredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		next.Validate(),
	); err != nil {
		return nil, err
	}
	if previous != nil {
		if err := previous.Validate(); err != nil {
			return nil, err
		}
	}

	change.id = id
	change.orderID = orderID
	change.previous = previous
	change.next = next
	change.actorID = actorID
	return change, nil
}

// RestoreStatusChange reconstructs a ledger entry from persistence. The
// validation rules are identical to NewStatusChange.
func RestoreStatusChange(
	id kernel.UUID,
	orderID kernel.UUID,
	previous *Status,
	next Status,
	actorID kernel.UUID,
	isDriver bool,
	notes *string,
	occurredAt time.Time,
) (*StatusChange, error) {
	return NewStatusChange(id, orderID, previous, next, actorID, isDriver, notes, occurredAt)
}

// Validate ensures the entry was created through a constructor.
func (c *StatusChange) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrStatusChangeIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (c *StatusChange) ID() kernel.UUID {
	return c.id
}

// OrderID returns the order the entry belongs to.
func (c *StatusChange) OrderID() kernel.UUID {
	return c.orderID
}

// Previous returns the status before the transition, nil for the creation
// entry.
func (c *StatusChange) Previous() *Status {
	return c.previous
}

// Next returns the status after the transition.
func (c *StatusChange) Next() Status {
	return c.next
}

// ActorID returns the principal that performed the transition.
func (c *StatusChange) ActorID() kernel.UUID {
	return c.actorID
}

// IsDriver reports whether the acting principal was a driver.
func (c *StatusChange) IsDriver() bool {
	return c.isDriver
}

// Notes returns the optional free-text note attached to the transition.
func (c *StatusChange) Notes() *string {
	return c.notes
}

// OccurredAt returns the transition timestamp.
func (c *StatusChange) OccurredAt() time.Time {
	return c.occurredAt
}
