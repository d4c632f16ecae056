package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrReportLocationCommandIsNotConstructed is returned when the command was
// not created via NewReportLocationCommand.
var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents a position report from a driver's device.
// The recorded-at timestamp is the device capture time, which drives
// last-write-wins resolution against the driver's cached position.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	driverID   kernel.UUID
	latitude   float64
	longitude  float64
	accuracy   *float64
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command recording a position sample for
// driverID.
func NewReportLocationCommand(
	driverID kernel.UUID,
	latitude, longitude float64,
	accuracy *float64,
	recordedAt time.Time,
) (ReportLocationCommand, error) {
	if err := driverID.Validate(); err != nil {
		return ReportLocationCommand{}, err
	}
	if recordedAt.IsZero() {
		return ReportLocationCommand{}, errs.NewValueIsRequiredError("recorded_at")
	}

	return ReportLocationCommand{
		driverID:   driverID,
		latitude:   latitude,
		longitude:  longitude,
		accuracy:   accuracy,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c ReportLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Latitude returns the sampled latitude in degrees.
func (c ReportLocationCommand) Latitude() float64 {
	return c.latitude
}

// Longitude returns the sampled longitude in degrees.
func (c ReportLocationCommand) Longitude() float64 {
	return c.longitude
}

// Accuracy returns the optional accuracy radius in meters.
func (c ReportLocationCommand) Accuracy() *float64 {
	return c.accuracy
}

// RecordedAt returns when the device captured the sample.
func (c ReportLocationCommand) RecordedAt() time.Time {
	return c.recordedAt
}
