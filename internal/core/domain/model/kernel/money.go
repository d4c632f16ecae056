package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

// ErrMoneyIsNegative is returned when constructing a Money from a negative
// amount. Order totals and item prices are always non-negative.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount cannot be negative")

// Money is a non-negative monetary amount stored as an integer number of
// cents. Storing cents keeps item-price multiplication and total summation
// exact, which matters because an order total must equal the sum of its
// items to the cent.
//
// The zero value is a valid zero amount.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromFloat(10.00)
//	total := price.MultiplyBy(2) // 20.00
type Money struct {
	cents int64
}

// NewMoney creates a Money from an amount in cents.
// Returns ErrMoneyIsNegative for negative amounts.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates a Money from a decimal amount in major units
// (e.g. 25.50), rounding to the nearest cent. Returns ErrMoneyIsNegative for
// negative amounts.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(int64(math.Round(amount * 100)))
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount in major units for JSON responses.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// MultiplyBy returns the amount multiplied by a non-negative quantity.
func (m Money) MultiplyBy(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// IsEqual reports whether two amounts are equal to the cent.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount as a decimal with two fraction digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
