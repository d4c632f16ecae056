// Package kernel provides core domain primitives shared across the dispatch
// domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities
//   - GeoPoint: a validated latitude/longitude pair used for delivery
//     destinations and driver location samples
//   - Money: a non-negative monetary amount stored in cents to avoid
//     floating-point accumulation errors
//
// These primitives enforce domain invariants at construction time. They are
// immutable and thread-safe, making them suitable for concurrent use. Zero
// values are invalid and rejected by Validate, so domain objects restored
// from persistence or built from request input are always in a known-good
// state.
package kernel
