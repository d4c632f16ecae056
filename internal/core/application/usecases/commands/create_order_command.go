package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was not
// created via NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one item line of an order creation request.
type OrderItemInput struct {
	Name     string
	Quantity int
	Price    kernel.Money
}

// CreateOrderCommand represents a request to register a new delivery order
// on behalf of a customer. The declared total must equal the sum of the item
// subtotals; the mismatch is rejected before anything is persisted.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	customerID            kernel.UUID
	actorID               kernel.UUID
	deliveryAddress       string
	deliveryInstructions  *string
	estimatedDeliveryTime *time.Time
	items                 []OrderItemInput
	total                 kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// actorID is the staff principal recorded on the creation history entry.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	actorID kernel.UUID,
	deliveryAddress string,
	deliveryInstructions *string,
	estimatedDeliveryTime *time.Time,
	items []OrderItemInput,
	total kernel.Money,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		deliveryInstructions:  deliveryInstructions,
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if deliveryAddress == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("delivery_address")
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	command.orderID = orderID
	command.customerID = customerID
	command.actorID = actorID
	command.deliveryAddress = deliveryAddress
	command.items = items
	command.total = total
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ActorID returns the staff principal creating the order.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// DeliveryAddress returns the drop-off address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryInstructions returns the optional courier instructions.
func (c CreateOrderCommand) DeliveryInstructions() *string {
	return c.deliveryInstructions
}

// EstimatedDeliveryTime returns the optional delivery estimate.
func (c CreateOrderCommand) EstimatedDeliveryTime() *time.Time {
	return c.estimatedDeliveryTime
}

// Items returns the requested item lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

// Total returns the declared order total.
func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

func (c CreateOrderCommand) buildItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(c.items))
	for _, input := range c.items {
		item, err := order.NewItem(input.Name, input.Quantity, input.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
