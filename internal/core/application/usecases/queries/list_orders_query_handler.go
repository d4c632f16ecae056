package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads pages of orders for the staff dashboard,
// newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing with the query's filters and pagination.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		SELECT id, customer_id, driver_id, status, delivery_address, total_cents,
			created_at, updated_at
		FROM orders
		WHERE 1=1`
	args := make([]any, 0, 5)

	if status := query.Status(); status != nil {
		stmt += " AND status = ?"
		args = append(args, status.String())
	}
	if driverID := query.DriverID(); driverID != nil {
		stmt += " AND driver_id = ?"
		args = append(args, driverID.Bytes())
	}
	if customerID := query.CustomerID(); customerID != nil {
		stmt += " AND customer_id = ?"
		args = append(args, customerID.Bytes())
	}

	stmt += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	orders := make([]ListOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListOrdersQueryResponse
		var driverID sql.NullString
		var totalCents int64

		if err = rows.Scan(
			&resp.ID, &resp.CustomerID, &driverID, &resp.Status,
			&resp.DeliveryAddress, &totalCents, &resp.CreatedAt, &resp.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if driverID.Valid {
			resp.DriverID = &driverID.String
		}
		resp.Total = float64(totalCents) / 100
		orders = append(orders, resp)
	}

	return orders, rows.Err()
}
