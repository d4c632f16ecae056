// Package relay fans committed state changes out to real-time subscribers.
// Notifications run after the owning transaction commits and never fail the
// caller: a relay outage is logged and the request still succeeds.
package relay

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Channel naming. Staff dashboards subscribe to the firehose, customers to
// their order channel, driver apps to their driver channel.
const (
	ordersChannel       = "orders"
	orderChannelPrefix  = "order-"
	driverChannelPrefix = "driver-"
)

// Event type tags.
const (
	EventNewOrder        = "new-order"
	EventStatusChange    = "status-change"
	EventDriverAssigned  = "driver-assigned"
	EventDriverLocation  = "driver-location-updated"
	EventProofOfDelivery = "proof-of-delivery"
)

// Notifier publishes lifecycle events to the relay channels. All methods are
// best effort: errors are logged at warn level and swallowed.
type Notifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewNotifier creates a Notifier over the given publisher.
func NewNotifier(publisher ports.EventPublisher, logger *slog.Logger) *Notifier {
	return &Notifier{publisher: publisher, logger: logger}
}

// NotifyNewOrder announces a freshly created order on the staff firehose and
// the order's own channel.
func (n *Notifier) NotifyNewOrder(ctx context.Context, o *order.Order) {
	event := ports.Event{
		Type: EventNewOrder,
		Payload: map[string]any{
			"order_id":    o.ID().String(),
			"customer_id": o.CustomerID().String(),
			"status":      o.Status().String(),
			"total":       o.Total().Float(),
		},
	}

	n.publish(ctx, ordersChannel, event)
	n.publish(ctx, orderChannel(o.ID()), event)
}

// NotifyStatusChange announces a lifecycle transition on the firehose, the
// order channel and, when a driver is bound, the driver channel.
func (n *Notifier) NotifyStatusChange(ctx context.Context, o *order.Order, previous order.Status) {
	event := ports.Event{
		Type: EventStatusChange,
		Payload: map[string]any{
			"order_id":        o.ID().String(),
			"previous_status": previous.String(),
			"status":          o.Status().String(),
		},
	}

	n.publish(ctx, ordersChannel, event)
	n.publish(ctx, orderChannel(o.ID()), event)
	if driverID := o.Driver(); driverID != nil {
		n.publish(ctx, driverChannel(*driverID), event)
	}
}

// NotifyDriverAssigned announces an assignment on the order and driver
// channels, plus the firehose.
func (n *Notifier) NotifyDriverAssigned(ctx context.Context, o *order.Order, d *driver.Driver) {
	event := ports.Event{
		Type: EventDriverAssigned,
		Payload: map[string]any{
			"order_id":    o.ID().String(),
			"driver_id":   d.ID().String(),
			"driver_name": d.Name(),
			"status":      o.Status().String(),
		},
	}

	n.publish(ctx, ordersChannel, event)
	n.publish(ctx, orderChannel(o.ID()), event)
	n.publish(ctx, driverChannel(d.ID()), event)
}

// NotifyDriverLocation announces an applied location sample on the driver
// channel and, when the driver is on an order, that order's channel so the
// customer can follow the courier.
func (n *Notifier) NotifyDriverLocation(ctx context.Context, d *driver.Driver, sample driver.LocationSample) {
	payload := map[string]any{
		"driver_id":   d.ID().String(),
		"latitude":    sample.Point().Latitude(),
		"longitude":   sample.Point().Longitude(),
		"recorded_at": sample.RecordedAt(),
	}
	if accuracy := sample.Accuracy(); accuracy != nil {
		payload["accuracy"] = *accuracy
	}
	event := ports.Event{Type: EventDriverLocation, Payload: payload}

	n.publish(ctx, driverChannel(d.ID()), event)
	if orderID := d.ActiveOrderID(); orderID != nil {
		n.publish(ctx, orderChannel(*orderID), event)
	}
}

// NotifyProofOfDelivery announces a submitted proof on the firehose and the
// order channel.
func (n *Notifier) NotifyProofOfDelivery(ctx context.Context, proof *order.ProofOfDelivery) {
	event := ports.Event{
		Type: EventProofOfDelivery,
		Payload: map[string]any{
			"order_id":   proof.OrderID().String(),
			"driver_id":  proof.DriverID().String(),
			"proof_type": proof.Type().String(),
		},
	}

	n.publish(ctx, ordersChannel, event)
	n.publish(ctx, orderChannel(proof.OrderID()), event)
}

func (n *Notifier) publish(ctx context.Context, channel string, event ports.Event) {
	if err := n.publisher.Publish(ctx, channel, event); err != nil {
		n.logger.WarnContext(ctx, "relay publish failed",
			slog.String("channel", channel),
			slog.String("event", event.Type),
			slog.Any("error", err),
		)
	}
}

func orderChannel(id kernel.UUID) string {
	return fmt.Sprintf("%s%s", orderChannelPrefix, id)
}

func driverChannel(id kernel.UUID) string {
	return fmt.Sprintf("%s%s", driverChannelPrefix, id)
}
