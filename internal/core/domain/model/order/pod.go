package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrProofIsNotConstructed is returned when using a ProofOfDelivery that was
// not created via NewProofOfDelivery or RestoreProofOfDelivery.
var ErrProofIsNotConstructed = errors.New(
	"ProofOfDelivery must be created via NewProofOfDelivery or RestoreProofOfDelivery constructor")

// ProofType classifies the delivery-confirmation evidence.
type ProofType int

const (
	// ProofUnknown represents an invalid or undefined proof type.
	ProofUnknown ProofType = iota

	// ProofSignature is a captured customer signature.
	ProofSignature

	// ProofPhoto is a photo taken at the drop-off point.
	ProofPhoto

	// ProofCode is a confirmation code read back by the customer.
	ProofCode
)

func getProofTypeStrings() map[ProofType]string {
	return map[ProofType]string{
		ProofUnknown:   "unknown",
		ProofSignature: "signature",
		ProofPhoto:     "photo",
		ProofCode:      "code",
	}
}

// ProofTypeFromString parses the wire representation of a proof type.
func ProofTypeFromString(s string) (ProofType, error) {
	for proofType, str := range getProofTypeStrings() {
		if str == s && proofType != ProofUnknown {
			return proofType, nil
		}
	}
	return ProofUnknown, errs.NewValueIsInvalidErrorWithCause("pod_type",
		fmt.Errorf("%q is not a valid proof type", s))
}

// Validate checks that the ProofType is one of the defined kinds.
func (p ProofType) Validate() error {
	if p != ProofSignature && p != ProofPhoto && p != ProofCode {
		return errs.NewValueIsInvalidErrorWithCause("pod_type",
			fmt.Errorf("%d is not a valid proof type", p))
	}
	return nil
}

// String returns the wire name of the proof type.
func (p ProofType) String() string {
	if str, ok := getProofTypeStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// ProofOfDelivery is the delivery-confirmation evidence submitted by the
// driver who completed an order. At most one proof exists per order; the
// store enforces uniqueness and later submissions are rejected.
//
// The payload is opaque to the dispatch core: a base64 blob or a storage
// reference, depending on the proof type. File storage itself is handled by
// an external collaborator.
type ProofOfDelivery struct {
	id        kernel.UUID
	orderID   kernel.UUID
	driverID  kernel.UUID
	proofType ProofType
	payload   string
	notes     *string
	location  *kernel.GeoPoint

	submittedAt time.Time

	isConstructed bool
}

// NewProofOfDelivery creates a proof record for orderID submitted by
// driverID. The payload must be non-empty; location is an optional geotag
// captured at submission time.
func NewProofOfDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	proofType ProofType,
	payload string,
	notes *string,
	location *kernel.GeoPoint,
	submittedAt time.Time,
) (*ProofOfDelivery, error) {
	proof := &ProofOfDelivery{
		notes:         notes,
		submittedAt:   submittedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverID.Validate(),
		proofType.Validate(),
	); err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload) == "" {
		return nil, errs.NewValueIsRequiredError("pod_data")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	proof.id = id
	proof.orderID = orderID
	proof.driverID = driverID
	proof.proofType = proofType
	proof.payload = payload
	proof.location = location
	return proof, nil
}

// RestoreProofOfDelivery reconstructs a proof record from persistence.
func RestoreProofOfDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	proofType ProofType,
	payload string,
	notes *string,
	location *kernel.GeoPoint,
	submittedAt time.Time,
) (*ProofOfDelivery, error) {
	return NewProofOfDelivery(id, orderID, driverID, proofType, payload, notes, location, submittedAt)
}

// Validate ensures the proof was created through a constructor.
func (p *ProofOfDelivery) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProofIsNotConstructed
	}
	return nil
}

// ID returns the proof's unique identifier.
func (p *ProofOfDelivery) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order the proof confirms.
func (p *ProofOfDelivery) OrderID() kernel.UUID {
	return p.orderID
}

// DriverID returns the submitting driver.
func (p *ProofOfDelivery) DriverID() kernel.UUID {
	return p.driverID
}

// Type returns the kind of evidence.
func (p *ProofOfDelivery) Type() ProofType {
	return p.proofType
}

// Payload returns the opaque evidence blob or reference.
func (p *ProofOfDelivery) Payload() string {
	return p.payload
}

// Notes returns the optional note attached at submission.
func (p *ProofOfDelivery) Notes() *string {
	return p.notes
}

// Location returns the optional geotag captured at submission.
func (p *ProofOfDelivery) Location() *kernel.GeoPoint {
	return p.location
}

// SubmittedAt returns the submission timestamp.
func (p *ProofOfDelivery) SubmittedAt() time.Time {
	return p.submittedAt
}
