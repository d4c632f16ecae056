// Package queries contains read-only operations over the dispatch store.
// Query handlers bypass the aggregates and read projection rows directly
// with raw SQL, per the CQRS split: commands go through the domain model,
// reads go straight to the database.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned when the query was not
// created via NewGetOrderQuery.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its customer and driver contact
// details, item lines and full status history.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one item line of an order read.
type OrderItemResponse struct {
	Name     string
	Quantity int
	Price    float64
	Subtotal float64
}

// StatusChangeResponse is one audit trail entry of an order read.
type StatusChangeResponse struct {
	Previous   *string
	Next       string
	ActorID    string
	IsDriver   bool
	Notes      *string
	OccurredAt time.Time
}

// PartyResponse is the contact summary of a customer or driver on an order
// read.
type PartyResponse struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID                    string
	Status                string
	DeliveryAddress       string
	DeliveryInstructions  *string
	Total                 float64
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Customer PartyResponse
	Driver   *PartyResponse
	Items    []OrderItemResponse
	History  []StatusChangeResponse
}
