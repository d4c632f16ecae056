package driverrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver to the database. A duplicate email violates the
// unique index and surfaces as an InvalidOperationError.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewInvalidOperationError("register driver", "email already registered")
		}
		return errs.NewStoreError("insert driver", aggregate.ID().String(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable columns of an existing driver, guarded by the
// status the caller read the aggregate in. A concurrent status change makes
// RowsAffected zero, which surfaces as a DriverUnavailableError so callers
// report the assignment race as a conflict.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver, expectedStatus driver.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Select("status", "active_order_id",
			"last_latitude", "last_longitude", "last_accuracy", "last_recorded_at",
			"updated_at").
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String()).
		Updates(&dto)
	if result.Error != nil {
		return errs.NewStoreError("update driver", aggregate.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewDriverUnavailableError(aggregate.ID().String(), expectedStatus.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, errs.NewStoreError("get driver", id.String(), err)
	}

	return toDomain(dto)
}

// GetByEmail retrieves a driver by its unique email address.
func (r *GormDriverRepository) GetByEmail(ctx context.Context, email string) (*driver.Driver, error) {
	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", email)
		}
		return nil, errs.NewStoreError("get driver by email", email, err)
	}

	return toDomain(dto)
}

// GetAllByStatus retrieves all drivers in the given status.
func (r *GormDriverRepository) GetAllByStatus(ctx context.Context, status driver.Status) ([]*driver.Driver, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", status.String()).Error; err != nil {
		return nil, errs.NewStoreError("list drivers", status.String(), err)
	}

	return toDomainAll(dtos)
}

// GetAvailableStale retrieves available drivers whose last location report
// is older than the cutoff, including drivers that never reported but were
// last touched before the cutoff.
func (r *GormDriverRepository) GetAvailableStale(ctx context.Context, cutoff time.Time) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", driver.Available.String()).
		Where("(last_recorded_at IS NOT NULL AND last_recorded_at < ?) OR (last_recorded_at IS NULL AND updated_at < ?)",
			cutoff, cutoff).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStoreError("list stale drivers", cutoff.String(), err)
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []DriverDTO) ([]*driver.Driver, error) {
	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}
