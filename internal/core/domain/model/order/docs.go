// Package order contains the order aggregate and its satellite entities: the
// order status state machine, immutable order items, append-only status
// history entries, and proof-of-delivery records.
//
// The aggregate enforces the lifecycle invariants of the dispatch engine:
//   - status transitions follow the fixed table in Status.TransitionTo
//   - actual_delivery_time is set if and only if the order is delivered
//   - a driver is bound only while the order is in
//     assigned/picked_up/in_transit/delivered
//   - customer reference and items are immutable after creation
//   - the order total always equals the sum of its items
//
// Orders can only be created through NewOrder and restored from persistence
// through RestoreOrder; both validate every invariant.
package order
