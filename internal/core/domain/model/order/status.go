package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a closed
// state machine: the only permitted transitions are
//
//	pending ──> assigned ──> picked_up ──> in_transit ──> delivered
//	   │            │             │              │
//	   └────────────┴─────────────┴──────────────┴──> cancelled
//
// delivered and cancelled are terminal; no transition leaves them. Every
// (from, to) pair outside the table fails with an InvalidTransitionError
// naming both statuses.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order awaits driver assignment.
	Pending

	// Assigned indicates a driver has been bound to the order.
	Assigned

	// PickedUp indicates the driver has collected the order.
	PickedUp

	// InTransit indicates the order is on its way to the customer.
	InTransit

	// Delivered is the successful terminal status.
	Delivered

	// Cancelled is the abandoned terminal status, reachable from any
	// non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getTransitions returns the full transition table. A status missing a
// target in its slice cannot move there.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "picked_up"). Returns a ValueIsInvalidError for unrecognized input;
// "unknown" is not accepted.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "picked_up", ...).
// Implements fmt.Stringer and is safe on any value, including Unknown.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the table permits moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the table permits the move, otherwise an
// InvalidTransitionError whose message names both statuses.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// AllowsDriver reports whether an order in this status may carry a driver
// binding. Pending and cancelled orders must have no driver; all other
// statuses require one.
func (s Status) AllowsDriver() bool {
	switch s {
	case Assigned, PickedUp, InTransit, Delivered:
		return true
	default:
		return false
	}
}

// ValidateDriverBinding validates the consistency between order status and
// driver assignment: statuses from assigned through delivered require a
// bound driver, pending and cancelled forbid one.
func (s Status) ValidateDriverBinding(hasDriver bool) error {
	if hasDriver && !s.AllowsDriver() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot have a driver", s))
	}
	if !hasDriver && s.AllowsDriver() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a driver", s))
	}
	return nil
}
