// Package services contains stateless domain services coordinating behavior
// across multiple aggregates. The dispatcher keeps the order lifecycle and
// the driver availability machine consistent during assignment and release.
package services
