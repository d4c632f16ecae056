package ports

import (
	"context"
)

// Event is a relay message: a type tag and a flat payload serialized to JSON
// for subscribers. Payload values must be JSON-encodable.
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// EventPublisher pushes events to the real-time relay. Publishing is fire
// and forget from the caller's point of view: implementations report errors
// but callers log and continue, so a relay outage never fails a committed
// state change.
type EventPublisher interface {
	// Publish sends the event to the named channel.
	Publish(ctx context.Context, channel string, event Event) error
}
