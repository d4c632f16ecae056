package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrRegisterDriverCommandIsNotConstructed is returned when the command was
// not created via NewRegisterDriverCommand.
var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand represents a staff request to register a new driver.
// The plaintext password travels only inside the command; the handler hashes
// it before the aggregate is built.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	email    string
	phone    string
	password string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a driver account.
func NewRegisterDriverCommand(driverID kernel.UUID, name, email, phone, password string) (RegisterDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return RegisterDriverCommand{}, err
	}
	if name == "" {
		return RegisterDriverCommand{}, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return RegisterDriverCommand{}, errs.NewValueIsRequiredError("email")
	}
	if len(password) < 8 {
		return RegisterDriverCommand{}, errs.NewValueIsInvalidError("password")
	}

	return RegisterDriverCommand{
		driverID: driverID,
		name:     name,
		email:    email,
		phone:    phone,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// DriverID returns the identifier assigned to the new driver.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver's display name.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

// Email returns the driver's unique email.
func (c RegisterDriverCommand) Email() string {
	return c.email
}

// Phone returns the driver's contact phone number.
func (c RegisterDriverCommand) Phone() string {
	return c.phone
}

// Password returns the plaintext password to hash.
func (c RegisterDriverCommand) Password() string {
	return c.password
}
