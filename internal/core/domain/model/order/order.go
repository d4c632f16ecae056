package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder. This ensures all orders are
// properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the dispatch engine. It manages the order
// lifecycle from creation through assignment, pickup and transit to the
// terminal delivered/cancelled statuses.
//
// Invariants maintained by the aggregate:
//   - the customer reference and the item list are immutable after creation
//   - the total equals the sum of item subtotals
//   - the status only changes along the transition table in Status
//   - actualDeliveryTime is set if and only if the status is delivered
//   - a driver is bound only while the status allows one (see
//     Status.AllowsDriver); cancelling releases the binding
//
// The struct uses private fields; mutation goes through Assign and
// TransitionTo, which are driven exclusively by the dispatch commands.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	// driverID is the assigned driver (nil while pending or cancelled)
	driverID *kernel.UUID

	status Status
	items  []Item
	total  kernel.Money

	deliveryAddress      string
	deliveryInstructions *string

	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a pending order with validation.
//
// Parameters:
//   - id: unique order identifier
//   - customerID: owning customer (required, immutable afterwards)
//   - deliveryAddress: destination address text (required)
//   - deliveryInstructions: optional free-text instructions
//   - estimatedDeliveryTime: optional ETA provided at creation
//   - items: line items; at least one is required
//   - total: declared order total; must equal the sum of item subtotals
//   - now: creation timestamp
//
// Returns a validation error if any parameter violates the rules above. The
// created order has status pending and no driver.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryAddress string,
	deliveryInstructions *string,
	estimatedDeliveryTime *time.Time,
	items []Item,
	total kernel.Money,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setDeliveryAddress(deliveryAddress),
		order.setItems(items, total),
	); err != nil {
		return nil, err
	}

	order.deliveryInstructions = deliveryInstructions
	order.estimatedDeliveryTime = estimatedDeliveryTime
	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts any lifecycle status, but still validates every
// cross-field invariant so corrupt rows cannot produce an inconsistent
// aggregate: the driver binding must match the status, and
// actualDeliveryTime must be present exactly when the status is delivered.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	items []Item,
	total kernel.Money,
	deliveryAddress string,
	deliveryInstructions *string,
	estimatedDeliveryTime *time.Time,
	actualDeliveryTime *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setDeliveryAddress(deliveryAddress),
		order.setItems(items, total),
		status.Validate(),
		status.ValidateDriverBinding(driverID != nil),
	); err != nil {
		return nil, err
	}

	if (status == Delivered) != (actualDeliveryTime != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("actual_delivery_time",
			fmt.Errorf("must be set if and only if status is delivered, status is %s", status))
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}

	order.status = status
	order.driverID = driverID
	order.deliveryInstructions = deliveryInstructions
	order.estimatedDeliveryTime = estimatedDeliveryTime
	order.actualDeliveryTime = actualDeliveryTime
	return order, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Driver returns the assigned driver's ID, or nil if none is bound.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// DeliveryAddress returns the destination address text.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryInstructions returns the optional delivery instructions.
func (o *Order) DeliveryInstructions() *string {
	return o.deliveryInstructions
}

// EstimatedDeliveryTime returns the ETA, if one was provided.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime returns the delivery completion time; non-nil exactly
// when the status is delivered.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsAssignedTo reports whether the given driver currently owns the order.
// Used for the ownership checks on driver-initiated transitions.
func (o *Order) IsAssignedTo(driverID kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driverID)
}

// Assign binds a driver to a pending order and moves it to assigned.
//
// Business rules:
//   - the driver ID must be valid
//   - the order must be pending; any other status fails with an
//     InvalidTransitionError naming the current status
//
// The caller (DispatchService) is responsible for flipping the driver
// aggregate to busy within the same transaction.
func (o *Order) Assign(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.updatedAt = now
	return nil
}

// TransitionTo moves the order to next per the transition table.
//
// Side effects applied atomically with the status change:
//   - delivered sets actualDeliveryTime to now
//   - cancelled clears the driver binding
//
// Returns an InvalidTransitionError when the table forbids the move.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now

	switch newStatus {
	case Delivered:
		o.actualDeliveryTime = &now
	case Cancelled:
		o.driverID = nil
	}
	return nil
}

// DeliverWithProof completes the order off the back of an accepted proof of
// delivery. Proof confirms the handover itself, so it may arrive while the
// order is still picked_up and the in_transit step was never reported; the
// two-hop path collapses to one move here. Side effects match TransitionTo
// to delivered: actualDeliveryTime is set to now.
//
// Returns an InvalidTransitionError when the order is not picked_up or
// in_transit.
func (o *Order) DeliverWithProof(now time.Time) error {
	switch o.status {
	case PickedUp, InTransit:
	default:
		return errs.NewInvalidTransitionError(o.status.String(), Delivered.String())
	}

	o.status = Delivered
	o.actualDeliveryTime = &now
	o.updatedAt = now
	return nil
}

// UpdateDetails replaces the delivery instructions and the estimated
// delivery time. Both fields take the given values as-is, so nil clears.
// Closed orders reject the change with an InvalidOperationError; every other
// status accepts it regardless of where the order is in its lifecycle.
func (o *Order) UpdateDetails(deliveryInstructions *string, estimatedDeliveryTime *time.Time, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidOperationError("update order details",
			fmt.Sprintf("order is %s", o.status))
	}

	o.deliveryInstructions = deliveryInstructions
	o.estimatedDeliveryTime = estimatedDeliveryTime
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer_id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setItems(items []Item, total kernel.Money) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	sum := kernel.Money{}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		sum = sum.Add(item.Subtotal())
	}

	if !sum.IsEqual(total) {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("declared total %s does not match item sum %s", total, sum))
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.total = total
	return nil
}
