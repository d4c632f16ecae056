// Package errs provides standardized error types for the dispatch core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the business-rule taxonomy of the dispatch engine:
//   - ValueIsRequiredError / ValueIsInvalidError: input validation failures
//   - ObjectNotFoundError: an entity id does not resolve
//   - InvalidTransitionError: an order status change not permitted by the
//     transition table (the message names the from and to statuses)
//   - DriverUnavailableError: an assignment target that is not free
//   - DriverBusyError: a driver status change attempted mid-delivery
//   - InvalidOperationError: mutation of an immutable field or a duplicate
//     proof-of-delivery submission
//   - StoreError: persistence-level failures outside the business taxonomy
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where applicable
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Business-rule violations are raised by the domain layer, classified with
// errors.Is at the HTTP boundary, and mapped to stable status codes there.
package errs
