// Package customer contains the minimal customer record the dispatch core
// needs: identity and contact details for order reads. Customer profiles are
// owned by an upstream system and treated as reference data here.
package customer

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when using an improperly
// initialized Customer.
var ErrCustomerIsNotConstructed = errors.New(
	"Customer must be created via NewCustomer or RestoreCustomer constructor")

// Customer is the contact record an order references.
type Customer struct {
	id    kernel.UUID
	name  string
	email string
	phone string

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewCustomer creates a customer record.
func NewCustomer(id kernel.UUID, name, email, phone string, now time.Time) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Customer{
		id:        id,
		name:      name,
		email:     strings.ToLower(strings.TrimSpace(email)),
		phone:     phone,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCustomer reconstructs a customer record from persistent storage.
func RestoreCustomer(id kernel.UUID, name, email, phone string, createdAt time.Time) (*Customer, error) {
	c, err := NewCustomer(id, name, email, phone, createdAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Validate ensures the Customer was created through a constructor.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the customer's email address.
func (c *Customer) Email() string {
	return c.email
}

// Phone returns the customer's contact phone number.
func (c *Customer) Phone() string {
	return c.phone
}

// CreatedAt returns the record creation timestamp.
func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}
