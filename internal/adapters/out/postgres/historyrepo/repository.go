// Package historyrepo persists the append-only order status audit trail.
// Rows carry an autoincrement sequence so the trail has a total order even
// when two entries share a timestamp; rows are never updated or deleted.
package historyrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusChangeDTO represents one row of the order status audit trail.
type StatusChangeDTO struct {
	Seq            uint64    `gorm:"primaryKey;autoIncrement"`
	ID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	PreviousStatus *string   `gorm:"type:varchar(16)"`
	NextStatus     string    `gorm:"type:varchar(16);not null"`
	ActorID        uuid.UUID `gorm:"type:uuid;not null"`
	IsDriver       bool      `gorm:"not null"`
	Notes          *string
	OccurredAt     time.Time `gorm:"not null"`
}

// TableName specifies the database table name for audit trail rows.
func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

// GormStatusHistoryRepository implements StatusHistoryRepository using GORM.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new GORM status history repository.
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// Append persists a status change record.
func (r *GormStatusHistoryRepository) Append(ctx context.Context, change *order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	var previous *string
	if prev := change.Previous(); prev != nil {
		str := prev.String()
		previous = &str
	}

	dto := StatusChangeDTO{
		ID:             change.ID().Bytes(),
		OrderID:        change.OrderID().Bytes(),
		PreviousStatus: previous,
		NextStatus:     change.Next().String(),
		ActorID:        change.ActorID().Bytes(),
		IsDriver:       change.IsDriver(),
		Notes:          change.Notes(),
		OccurredAt:     change.OccurredAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreError("insert status change", change.ID().String(), err)
	}

	return nil
}

// ListByOrder retrieves the full audit trail of an order, oldest first.
func (r *GormStatusHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusChangeDTO
	err := r.db.WithContext(ctx).
		Order("seq").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, errs.NewStoreError("list status changes", orderID.String(), err)
	}

	changes := make([]*order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		change, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		changes = append(changes, change)
	}

	return changes, nil
}

func toDomain(dto StatusChangeDTO) (*order.StatusChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	var previous *order.Status
	if dto.PreviousStatus != nil {
		status, statusErr := order.StatusFromString(*dto.PreviousStatus)
		if statusErr != nil {
			return nil, statusErr
		}
		previous = &status
	}

	next, err := order.StatusFromString(dto.NextStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusChange(
		id, orderID, previous, next, actorID, dto.IsDriver, dto.Notes, dto.OccurredAt,
	)
}
