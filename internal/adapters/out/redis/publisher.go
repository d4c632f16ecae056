// Package redis implements the real-time relay on Redis pub/sub. Each event
// is JSON-encoded and published to a channel; subscribers (the notification
// gateway, ops dashboards) consume the stream outside this process.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Publisher implements EventPublisher on a Redis connection.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a Publisher using the given Redis client.
func NewPublisher(client *redis.Client) (*Publisher, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Publisher{client: client}, nil
}

// Publish JSON-encodes the event and pushes it to the named channel.
// Delivery is best effort: Redis pub/sub drops messages with no subscriber,
// which is the semantics the relay wants.
func (p *Publisher) Publish(ctx context.Context, channel string, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %q: %w", event.Type, err)
	}

	if err := p.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish to %q: %w", channel, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
