// Package podrepo persists delivery-confirmation evidence. The order column
// carries a unique index enforcing at most one proof per order.
package podrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProofOfDeliveryDTO represents the database structure for delivery proofs.
type ProofOfDeliveryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	DriverID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProofType string    `gorm:"type:varchar(16);not null"`
	Payload   string    `gorm:"not null"`
	Notes     *string

	Latitude  *float64
	Longitude *float64

	SubmittedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for delivery proofs.
func (ProofOfDeliveryDTO) TableName() string {
	return "proofs_of_delivery"
}

// GormProofOfDeliveryRepository implements ProofOfDeliveryRepository using GORM.
type GormProofOfDeliveryRepository struct {
	db *gorm.DB
}

// NewGormProofOfDeliveryRepository creates a new GORM proof repository.
func NewGormProofOfDeliveryRepository(db *gorm.DB) *GormProofOfDeliveryRepository {
	return &GormProofOfDeliveryRepository{db: db}
}

// Add persists a new proof. A second proof for the same order violates the
// unique index and surfaces as an InvalidOperationError.
func (r *GormProofOfDeliveryRepository) Add(ctx context.Context, proof *order.ProofOfDelivery) error {
	if err := proof.Validate(); err != nil {
		return err
	}

	dto := fromDomain(proof)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewInvalidOperationError("submit proof", "proof already exists for order")
		}
		return errs.NewStoreError("insert proof", proof.ID().String(), err)
	}

	return nil
}

// GetByOrder retrieves the proof submitted for an order, if any.
func (r *GormProofOfDeliveryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*order.ProofOfDelivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ProofOfDeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proof of delivery", orderID.String())
		}
		return nil, errs.NewStoreError("get proof", orderID.String(), err)
	}

	return toDomain(dto)
}

func fromDomain(proof *order.ProofOfDelivery) ProofOfDeliveryDTO {
	dto := ProofOfDeliveryDTO{
		ID:          proof.ID().Bytes(),
		OrderID:     proof.OrderID().Bytes(),
		DriverID:    proof.DriverID().Bytes(),
		ProofType:   proof.Type().String(),
		Payload:     proof.Payload(),
		Notes:       proof.Notes(),
		SubmittedAt: proof.SubmittedAt(),
	}

	if location := proof.Location(); location != nil {
		lat := location.Latitude()
		lng := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}

func toDomain(dto ProofOfDeliveryDTO) (*order.ProofOfDelivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	proofType, err := order.ProofTypeFromString(dto.ProofType)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return order.RestoreProofOfDelivery(
		id, orderID, driverID, proofType, dto.Payload, dto.Notes, location, dto.SubmittedAt,
	)
}
