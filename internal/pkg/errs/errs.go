package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Each structured error
// type below unwraps to exactly one of these, so callers can branch on the
// error kind without inspecting the concrete type.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrObjectNotFound    = errors.New("object not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDriverUnavailable = errors.New("driver unavailable")
	ErrDriverBusy        = errors.New("driver busy")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrStore             = errors.New("store failure")
)

// sanitize strips newlines from values interpolated into error messages so a
// single error always renders as a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required
// value, wrapping the underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value,
// wrapping the underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates that an entity id did not resolve.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for an entity that could not be
// found by the given identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates a not-found error wrapping the
// underlying lookup failure.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v (cause: %s)", ErrObjectNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s %v", ErrObjectNotFound, sanitize(e.ParamName), e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidTransitionError indicates an order status change that is not
// permitted by the transition table. The message always names both the
// source and target statuses.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an error for a status change from From
// to To that the transition table does not allow.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s from %s to %s", ErrInvalidTransition, sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// DriverUnavailableError indicates an assignment target that is not free.
type DriverUnavailableError struct {
	DriverID string
	Status   string
}

// NewDriverUnavailableError creates an error for a driver that cannot take a
// new order because of its current status.
func NewDriverUnavailableError(driverID, status string) *DriverUnavailableError {
	return &DriverUnavailableError{DriverID: driverID, Status: status}
}

func (e *DriverUnavailableError) Error() string {
	return fmt.Sprintf("%s: driver %s is %s", ErrDriverUnavailable, sanitize(e.DriverID), sanitize(e.Status))
}

func (e *DriverUnavailableError) Unwrap() error {
	return ErrDriverUnavailable
}

// DriverBusyError indicates a driver status self-update attempted while the
// driver is bound to an active delivery.
type DriverBusyError struct {
	DriverID string
	OrderID  string
}

// NewDriverBusyError creates an error for a driver that cannot change status
// while assigned to an active order.
func NewDriverBusyError(driverID, orderID string) *DriverBusyError {
	return &DriverBusyError{DriverID: driverID, OrderID: orderID}
}

func (e *DriverBusyError) Error() string {
	return fmt.Sprintf("%s: driver %s has active order %s", ErrDriverBusy, sanitize(e.DriverID), sanitize(e.OrderID))
}

func (e *DriverBusyError) Unwrap() error {
	return ErrDriverBusy
}

// InvalidOperationError indicates an attempted mutation the domain forbids,
// such as changing an immutable field or submitting a duplicate proof of
// delivery.
type InvalidOperationError struct {
	Operation string
	Reason    string
}

// NewInvalidOperationError creates an error for an operation the domain does
// not permit, with a human-readable reason.
func NewInvalidOperationError(operation, reason string) *InvalidOperationError {
	return &InvalidOperationError{Operation: operation, Reason: reason}
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidOperation, sanitize(e.Operation), sanitize(e.Reason))
}

func (e *InvalidOperationError) Unwrap() error {
	return ErrInvalidOperation
}

// StoreError indicates a persistence-level failure not covered by the
// business taxonomy (connectivity, unexpected constraint violations). It
// carries the operation and entity for log context.
type StoreError struct {
	Operation string
	EntityID  string
	Cause     error
}

// NewStoreError creates a store failure error for the given operation and
// entity, wrapping the underlying cause.
func NewStoreError(operation, entityID string, cause error) *StoreError {
	return &StoreError{Operation: operation, EntityID: entityID, Cause: cause}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s %s (cause: %s)", ErrStore, sanitize(e.Operation), sanitize(e.EntityID), sanitize(e.Cause.Error()))
}

func (e *StoreError) Unwrap() error {
	return ErrStore
}
