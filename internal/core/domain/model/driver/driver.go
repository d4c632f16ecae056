package driver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when registering a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsInvalid is returned when the email is missing or malformed.
	ErrEmailIsInvalid = errs.NewValueIsInvalidError("email")
	// ErrPasswordHashIsRequired is returned when the hashed credential is missing.
	// Hashing itself is performed by an external collaborator before construction.
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password hash")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
)

// Driver is the aggregate root of the driver registry. It owns the driver's
// identity, availability status, the mirror of the single in-flight order,
// and the denormalized last-known-location cache.
//
// Invariants:
//   - status is busy if and only if activeOrderID is set
//   - a busy driver cannot take a second order
//   - self-service status changes only move between available and offline
//   - the location cache only advances: an older sample never overwrites a
//     newer one (last-write-wins by recorded-at timestamp)
type Driver struct {
	id           kernel.UUID
	name         string
	email        string
	phone        string
	passwordHash string

	status        Status
	activeOrderID *kernel.UUID
	lastLocation  *LocationSample

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewDriver registers a new driver. The password is hashed by an external
// collaborator; the aggregate only stores the opaque hash. New drivers start
// offline with no active order and no known location.
func NewDriver(id kernel.UUID, name, email, phone, passwordHash string, now time.Time) (*Driver, error) {
	d := &Driver{
		status:    Offline,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setEmail(email),
		d.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	d.phone = phone
	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// validating the busy/active-order consistency along the way.
func RestoreDriver(
	id kernel.UUID,
	name, email, phone, passwordHash string,
	status Status,
	activeOrderID *kernel.UUID,
	lastLocation *LocationSample,
	createdAt, updatedAt time.Time,
) (*Driver, error) {
	d := &Driver{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setEmail(email),
		d.setPasswordHash(passwordHash),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if (status == Busy) != (activeOrderID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("active_order_id",
			fmt.Errorf("must be set if and only if status is busy, status is %s", status))
	}
	if activeOrderID != nil {
		if err := activeOrderID.Validate(); err != nil {
			return nil, err
		}
	}
	if lastLocation != nil {
		if err := lastLocation.Validate(); err != nil {
			return nil, err
		}
	}

	d.phone = phone
	d.status = status
	d.activeOrderID = activeOrderID
	d.lastLocation = lastLocation
	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Email returns the driver's unique email address.
func (d *Driver) Email() string {
	return d.email
}

// Phone returns the driver's contact phone number.
func (d *Driver) Phone() string {
	return d.phone
}

// PasswordHash returns the opaque hashed credential.
func (d *Driver) PasswordHash() string {
	return d.passwordHash
}

// Status returns the current availability status.
func (d *Driver) Status() Status {
	return d.status
}

// ActiveOrderID returns the bound in-flight order, or nil when the driver is
// not busy.
func (d *Driver) ActiveOrderID() *kernel.UUID {
	return d.activeOrderID
}

// LastLocation returns the denormalized last-known-location cache, or nil if
// the driver has never reported a position.
func (d *Driver) LastLocation() *LocationSample {
	return d.lastLocation
}

// CreatedAt returns the registration timestamp.
func (d *Driver) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (d *Driver) UpdatedAt() time.Time {
	return d.updatedAt
}

// TakeOrder binds the driver to an order and flips the status to busy.
// Fails with a DriverUnavailableError unless the driver is available; a busy
// driver can never be double-booked.
func (d *Driver) TakeOrder(orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if d.status != Available {
		return errs.NewDriverUnavailableError(d.id.String(), d.status.String())
	}

	d.status = Busy
	d.activeOrderID = &orderID
	d.updatedAt = now
	return nil
}

// ReleaseOrder unbinds the active order and returns the driver to available.
// Called by the dispatch engine when the bound order reaches a terminal
// status. Fails with an InvalidOperationError when the driver is not busy.
func (d *Driver) ReleaseOrder(now time.Time) error {
	if d.status != Busy || d.activeOrderID == nil {
		return errs.NewInvalidOperationError("release driver",
			fmt.Sprintf("driver %s has no active order", d.id))
	}

	d.status = Available
	d.activeOrderID = nil
	d.updatedAt = now
	return nil
}

// ChangeStatus applies a self-service availability change. The server is the
// sole authority on the target: only available and offline are accepted, and
// a busy driver is rejected with a DriverBusyError regardless of target.
func (d *Driver) ChangeStatus(target Status, now time.Time) error {
	if !target.IsSelfServiceTarget() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a permitted driver status target", target))
	}
	if d.status == Busy {
		orderID := ""
		if d.activeOrderID != nil {
			orderID = d.activeOrderID.String()
		}
		return errs.NewDriverBusyError(d.id.String(), orderID)
	}

	d.status = target
	d.updatedAt = now
	return nil
}

// RecordLocation applies a position sample to the last-location cache using
// last-write-wins by the sample's recorded-at timestamp. Returns true when
// the cache advanced, false when the sample was older than the cached one
// and was ignored.
func (d *Driver) RecordLocation(sample LocationSample) (bool, error) {
	if err := sample.Validate(); err != nil {
		return false, err
	}

	if d.lastLocation != nil && !sample.IsNewerThan(*d.lastLocation) {
		return false, nil
	}

	d.lastLocation = &sample
	d.updatedAt = sample.RecordedAt()
	return true, nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrEmailIsInvalid
	}
	d.email = strings.ToLower(email)
	return nil
}

func (d *Driver) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return ErrPasswordHashIsRequired
	}
	d.passwordHash = passwordHash
	return nil
}
