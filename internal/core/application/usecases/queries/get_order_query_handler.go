package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its parties, item lines and
// status history. The joined read is split into three statements; they run
// outside a transaction because the read model tolerates a history entry
// landing between them.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the order read. Returns an ObjectNotFoundError when the
// order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	var totalCents int64
	var driverID, driverName, driverEmail, driverPhone sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.status, o.delivery_address, o.delivery_instructions,
			o.total_cents, o.estimated_delivery_time, o.actual_delivery_time,
			o.created_at, o.updated_at,
			c.id, c.name, c.email, c.phone,
			d.id, d.name, d.email, d.phone
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN drivers d ON d.id = o.driver_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&response.ID, &response.Status, &response.DeliveryAddress, &response.DeliveryInstructions,
		&totalCents, &response.EstimatedDeliveryTime, &response.ActualDeliveryTime,
		&response.CreatedAt, &response.UpdatedAt,
		&response.Customer.ID, &response.Customer.Name, &response.Customer.Email, &response.Customer.Phone,
		&driverID, &driverName, &driverEmail, &driverPhone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Total = float64(totalCents) / 100
	if driverID.Valid {
		response.Driver = &PartyResponse{
			ID:    driverID.String,
			Name:  driverName.String,
			Email: driverEmail.String,
			Phone: driverPhone.String,
		}
	}

	if response.Items, err = h.loadItems(ctx, query); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.History, err = h.loadHistory(ctx, query); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, query GetOrderQuery) ([]OrderItemResponse, error) {
	items := make([]OrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT name, quantity, price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var priceCents int64

		if err = rows.Scan(&item.Name, &item.Quantity, &priceCents); err != nil {
			return nil, err
		}

		item.Price = float64(priceCents) / 100
		item.Subtotal = float64(priceCents*int64(item.Quantity)) / 100
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadHistory(ctx context.Context, query GetOrderQuery) ([]StatusChangeResponse, error) {
	history := make([]StatusChangeResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT previous_status, next_status, actor_id, is_driver, notes, occurred_at
		FROM order_status_changes
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var change StatusChangeResponse

		if err = rows.Scan(
			&change.Previous, &change.Next, &change.ActorID,
			&change.IsDriver, &change.Notes, &change.OccurredAt,
		); err != nil {
			return nil, err
		}

		history = append(history, change)
	}

	return history, rows.Err()
}
