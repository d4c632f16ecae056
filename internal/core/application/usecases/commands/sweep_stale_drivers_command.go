package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrSweepStaleDriversCommandIsNotConstructed is returned when the command
// was not created via NewSweepStaleDriversCommand.
var ErrSweepStaleDriversCommandIsNotConstructed = errors.New(
	"SweepStaleDriversCommand must be created via NewSweepStaleDriversCommand constructor",
)

// SweepStaleDriversCommand represents a background sweep that takes
// available drivers offline when their last location report is older than
// the staleness window. Busy drivers are never swept.
type SweepStaleDriversCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewSweepStaleDriversCommand creates a sweep command with the given
// staleness window.
func NewSweepStaleDriversCommand(staleAfter time.Duration) (SweepStaleDriversCommand, error) {
	if staleAfter <= 0 {
		return SweepStaleDriversCommand{}, errs.NewValueIsInvalidError("stale_after")
	}

	return SweepStaleDriversCommand{
		staleAfter: staleAfter,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepStaleDriversCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleDriversCommandIsNotConstructed)
}

// StaleAfter returns the staleness window.
func (c SweepStaleDriversCommand) StaleAfter() time.Duration {
	return c.staleAfter
}
