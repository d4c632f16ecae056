package order

import (
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an Item that was not
// created via NewItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"order item must be created via NewItem constructor")

// Item is a line item of an order: a named product with a positive quantity
// and a non-negative unit price. Items are immutable once the order is
// created; there is no update path.
type Item struct {
	name     string
	quantity int
	price    kernel.Money
	guard    guard.ConstructorGuard
}

// NewItem creates an order line item.
//
// Validation rules:
//   - name must be non-empty after trimming
//   - quantity must be positive
//   - price carries its own non-negativity invariant from kernel.Money
func NewItem(name string, quantity int, price kernel.Money) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		name:     name,
		quantity: quantity,
		price:    price,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the item's product name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price.
func (i Item) Price() kernel.Money {
	return i.price
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.MultiplyBy(i.quantity)
}
