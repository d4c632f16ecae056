// Package locationrepo persists the append-only driver location trail.
// Writes run outside the unit of work so the high-frequency reports never
// contend with lifecycle transactions.
package locationrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationSampleDTO represents one row of the driver location trail.
type LocationSampleDTO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	DriverID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Latitude   float64   `gorm:"not null"`
	Longitude  float64   `gorm:"not null"`
	Accuracy   *float64
	RecordedAt time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for location trail rows.
func (LocationSampleDTO) TableName() string {
	return "driver_location_samples"
}

// GormLocationHistoryRepository implements LocationHistoryRepository using GORM.
type GormLocationHistoryRepository struct {
	db *gorm.DB
}

// NewGormLocationHistoryRepository creates a new GORM location trail repository.
func NewGormLocationHistoryRepository(db *gorm.DB) *GormLocationHistoryRepository {
	return &GormLocationHistoryRepository{db: db}
}

// Append persists a location sample for a driver.
func (r *GormLocationHistoryRepository) Append(ctx context.Context, driverID kernel.UUID, sample driver.LocationSample) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := sample.Validate(); err != nil {
		return err
	}

	dto := LocationSampleDTO{
		DriverID:   driverID.Bytes(),
		Latitude:   sample.Point().Latitude(),
		Longitude:  sample.Point().Longitude(),
		Accuracy:   sample.Accuracy(),
		RecordedAt: sample.RecordedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreError("insert location sample", driverID.String(), err)
	}

	return nil
}

// ListByDriver retrieves the most recent samples for a driver, newest first.
func (r *GormLocationHistoryRepository) ListByDriver(ctx context.Context, driverID kernel.UUID, limit int) ([]driver.LocationSample, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []LocationSampleDTO
	err := r.db.WithContext(ctx).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&dtos, "driver_id = ?", driverID.Bytes()).Error
	if err != nil {
		return nil, errs.NewStoreError("list location samples", driverID.String(), err)
	}

	samples := make([]driver.LocationSample, 0, len(dtos))
	for _, dto := range dtos {
		point, pointErr := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		sample, sampleErr := driver.NewLocationSample(point, dto.Accuracy, dto.RecordedAt)
		if sampleErr != nil {
			return nil, sampleErr
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
