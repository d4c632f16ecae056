// Package driverrepo provides data transfer objects and mapping functions
// for driver persistence. The driver row carries the availability status,
// the single-active-order binding and the denormalized last-known-location
// cache; the append-only location trail lives in its own table.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. Email carries a unique index; a duplicate registration fails
// at insert.
type DriverDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Phone        string
	PasswordHash string `gorm:"not null"`

	Status        string     `gorm:"type:varchar(16);index;not null"`
	ActiveOrderID *uuid.UUID `gorm:"type:uuid"`

	LastLatitude   *float64
	LastLongitude  *float64
	LastAccuracy   *float64
	LastRecordedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		Phone:        aggregate.Phone(),
		PasswordHash: aggregate.PasswordHash(),
		Status:       aggregate.Status().String(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}

	if id := aggregate.ActiveOrderID(); id != nil {
		raw := id.Bytes()
		dto.ActiveOrderID = &raw
	}

	if sample := aggregate.LastLocation(); sample != nil {
		lat := sample.Point().Latitude()
		lng := sample.Point().Longitude()
		recordedAt := sample.RecordedAt()
		dto.LastLatitude = &lat
		dto.LastLongitude = &lng
		dto.LastAccuracy = sample.Accuracy()
		dto.LastRecordedAt = &recordedAt
	}

	return dto
}

// toDomain converts a database DTO to a driver aggregate via RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := driver.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var activeOrderID *kernel.UUID
	if dto.ActiveOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.ActiveOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		activeOrderID = &orderID
	}

	var lastLocation *driver.LocationSample
	if dto.LastLatitude != nil && dto.LastLongitude != nil && dto.LastRecordedAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LastLatitude, *dto.LastLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		sample, sampleErr := driver.NewLocationSample(point, dto.LastAccuracy, *dto.LastRecordedAt)
		if sampleErr != nil {
			return nil, sampleErr
		}
		lastLocation = &sample
	}

	return driver.RestoreDriver(
		id, dto.Name, dto.Email, dto.Phone, dto.PasswordHash,
		status, activeOrderID, lastLocation,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
