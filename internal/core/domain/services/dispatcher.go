package services

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// Dispatcher is a domain service coordinating assignment between the order
// lifecycle and the driver availability machine. It keeps the cross-aggregate
// invariant intact: a driver is busy exactly when an in-flight order holds
// its binding.
//
// Business rules:
//   - only pending orders accept a driver
//   - only available drivers accept an order
//   - when an order reaches a terminal status its driver is released
//
// The dispatcher mutates both aggregates in memory; the caller persists them
// inside a single transaction so the pair changes atomically.
type Dispatcher struct{}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// Assign binds the driver to the order and the order to the driver. The
// order must be pending and the driver must be available; either aggregate
// rejecting the change leaves both untouched from the caller's perspective
// because the caller only persists on success.
func (d Dispatcher) Assign(o *order.Order, drv *driver.Driver, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := drv.Validate(); err != nil {
		return err
	}

	if err := drv.TakeOrder(o.ID(), now); err != nil {
		return err
	}

	return o.Assign(drv.ID(), now)
}

// Complete delivers the order on the strength of an accepted proof of
// delivery and releases the bound driver. Unlike Transition it accepts
// orders still in picked_up, because the proof itself confirms the handover.
// Returns true when the driver aggregate was mutated and must be persisted
// alongside the order.
func (d Dispatcher) Complete(o *order.Order, drv *driver.Driver, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if err := o.DeliverWithProof(now); err != nil {
		return false, err
	}

	if drv == nil {
		return false, nil
	}

	if err := drv.ReleaseOrder(now); err != nil {
		return false, err
	}
	return true, nil
}

// Transition advances the order to the next status and, when the order lands
// on a terminal status while a driver is bound, releases that driver back to
// available. Returns true when the driver aggregate was mutated and must be
// persisted alongside the order.
func (d Dispatcher) Transition(o *order.Order, drv *driver.Driver, next order.Status, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if err := o.TransitionTo(next, now); err != nil {
		return false, err
	}

	if !next.IsTerminal() || drv == nil {
		return false, nil
	}

	if err := drv.ReleaseOrder(now); err != nil {
		return false, err
	}
	return true, nil
}
