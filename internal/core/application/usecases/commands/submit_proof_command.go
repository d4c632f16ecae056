package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrSubmitProofCommandIsNotConstructed is returned when the command was not
// created via NewSubmitProofCommand.
var ErrSubmitProofCommandIsNotConstructed = errors.New(
	"SubmitProofCommand must be created via NewSubmitProofCommand constructor",
)

// SubmitProofCommand represents a driver submitting delivery-confirmation
// evidence for their active order. Accepting the proof also completes the
// delivery.
type SubmitProofCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	driverID  kernel.UUID
	proofType order.ProofType
	payload   string
	notes     *string
	location  *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewSubmitProofCommand creates a command recording proof evidence for
// orderID on behalf of driverID.
func NewSubmitProofCommand(
	orderID kernel.UUID,
	driverID kernel.UUID,
	proofType order.ProofType,
	payload string,
	notes *string,
	location *kernel.GeoPoint,
) (SubmitProofCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		driverID.Validate(),
		proofType.Validate(),
	); err != nil {
		return SubmitProofCommand{}, err
	}
	if payload == "" {
		return SubmitProofCommand{}, errs.NewValueIsRequiredError("pod_data")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return SubmitProofCommand{}, err
		}
	}

	return SubmitProofCommand{
		orderID:   orderID,
		driverID:  driverID,
		proofType: proofType,
		payload:   payload,
		notes:     notes,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitProofCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProofCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c SubmitProofCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the submitting driver.
func (c SubmitProofCommand) DriverID() kernel.UUID {
	return c.driverID
}

// ProofType returns the kind of evidence.
func (c SubmitProofCommand) ProofType() order.ProofType {
	return c.proofType
}

// Payload returns the opaque evidence blob or reference.
func (c SubmitProofCommand) Payload() string {
	return c.payload
}

// Notes returns the optional note attached at submission.
func (c SubmitProofCommand) Notes() *string {
	return c.notes
}

// Location returns the optional geotag captured at submission.
func (c SubmitProofCommand) Location() *kernel.GeoPoint {
	return c.location
}
