package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// ListDriversQueryHandler reads the driver roster with the denormalized
// last-location cache, for the staff dashboard and the assignment picker.
type ListDriversQueryHandler struct {
	db *gorm.DB
}

// NewListDriversQueryHandler creates a handler for driver listings.
func NewListDriversQueryHandler(db *gorm.DB) ListDriversQueryHandler {
	return ListDriversQueryHandler{db: db}
}

// Handle executes the listing, sorted by name for stable output.
func (h ListDriversQueryHandler) Handle(ctx context.Context, query ListDriversQuery) ([]ListDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		SELECT id, name, email, phone, status, active_order_id,
			last_latitude, last_longitude, last_recorded_at
		FROM drivers`
	args := make([]any, 0, 1)

	if status := query.Status(); status != nil {
		stmt += " WHERE status = ?"
		args = append(args, status.String())
	}
	stmt += " ORDER BY name"

	drivers := make([]ListDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListDriversQueryResponse
		var activeOrderID sql.NullString
		var latitude, longitude sql.NullFloat64
		var recordedAt sql.NullTime

		if err = rows.Scan(
			&resp.ID, &resp.Name, &resp.Email, &resp.Phone, &resp.Status,
			&activeOrderID, &latitude, &longitude, &recordedAt,
		); err != nil {
			return nil, err
		}

		if activeOrderID.Valid {
			resp.ActiveOrderID = &activeOrderID.String
		}
		if latitude.Valid && longitude.Valid {
			resp.LastLocation = &DriverLocationResponse{
				Latitude:   latitude.Float64,
				Longitude:  longitude.Float64,
				RecordedAt: recordedAt.Time.UTC(),
			}
		}
		drivers = append(drivers, resp)
	}

	return drivers, rows.Err()
}
