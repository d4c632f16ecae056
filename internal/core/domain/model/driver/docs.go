// Package driver contains the driver aggregate: registry identity, the
// availability state machine, the single-active-order binding and the
// denormalized last-known-location cache.
//
// Availability rules enforced by the aggregate:
//   - a driver is busy if and only if an active order is bound
//   - a busy driver cannot take a second order or change its own status
//   - self-service status changes only move between available and offline
//
// The last-location cache applies last-write-wins by sample timestamp, so a
// retried older sample never overwrites a newer position. The append-only
// location history is persisted separately and is not part of the aggregate.
package driver
