package driver

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrLocationSampleIsNotConstructed is returned when using a LocationSample
// that was not created via NewLocationSample.
var ErrLocationSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"location sample must be created via NewLocationSample constructor")

// LocationSample is a single position report from a driver's device: a
// validated coordinate pair, an optional accuracy radius in meters, and the
// time the sample was recorded on the device. The recorded-at timestamp, not
// the arrival time, drives last-write-wins conflict resolution, so retried
// or reordered samples cannot move a driver backwards.
type LocationSample struct {
	point      kernel.GeoPoint
	accuracy   *float64
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewLocationSample creates a location sample. The point must be a
// constructed GeoPoint; accuracy, when present, must be non-negative.
func NewLocationSample(point kernel.GeoPoint, accuracy *float64, recordedAt time.Time) (LocationSample, error) {
	if err := point.Validate(); err != nil {
		return LocationSample{}, err
	}
	if accuracy != nil && *accuracy < 0 {
		return LocationSample{}, errs.NewValueIsInvalidError("accuracy")
	}
	if recordedAt.IsZero() {
		return LocationSample{}, errs.NewValueIsRequiredError("recorded_at")
	}

	return LocationSample{
		point:      point,
		accuracy:   accuracy,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the sample was created through NewLocationSample.
func (s LocationSample) Validate() error {
	return s.guard.Validate(ErrLocationSampleIsNotConstructed)
}

// Point returns the sampled coordinates.
func (s LocationSample) Point() kernel.GeoPoint {
	return s.point
}

// Accuracy returns the optional accuracy radius in meters.
func (s LocationSample) Accuracy() *float64 {
	return s.accuracy
}

// RecordedAt returns when the device captured the sample.
func (s LocationSample) RecordedAt() time.Time {
	return s.recordedAt
}

// IsNewerThan reports whether this sample was recorded strictly after other.
func (s LocationSample) IsNewerThan(other LocationSample) bool {
	return s.recordedAt.After(other.recordedAt)
}
