package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis and publishes events on channel.
func NewRedisPublisher(redisURL, channel string) (Publisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisPublisher{client: client, channel: channel}, nil
}

// Publish sends the encoded event with PUBLISH.
func (r *redisPublisher) Publish(ctx context.Context, event SchemaEvent) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return r.client.Publish(ctx, r.channel, data).Err()
}

func (r *redisPublisher) Close() error {
	return r.client.Close()
}
