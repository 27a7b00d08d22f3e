package bookingRepo

import (
	"context"
	"encoding/json"
	"fmt"

	"santai/models"

	"github.com/go-redis/redis/v8"
)

// EventPublisher emits booking change events for realtime subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}

// RedisEventPublisher publishes change events as JSON on a Redis channel.
type RedisEventPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisEventPublisher creates a publisher on the given channel.
func NewRedisEventPublisher(client *redis.Client, channel string) *RedisEventPublisher {
	return &RedisEventPublisher{client: client, channel: channel}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, event models.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	return nil
}
