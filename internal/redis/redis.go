package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/majorleaf/eventhub-go/internal/config"
)

type Client struct {
	rdb *redis.Client
}

func NewClient(cfg *config.Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return &Client{rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// LockEvent serializes seat-decrementing bookings for one event. The lock is
// short-lived; it only needs to outlast a single booking transaction.
func (c *Client) LockEvent(ctx context.Context, eventID uint, userID uint) error {
	key := fmt.Sprintf("event_lock:%d", eventID)
	value := fmt.Sprintf("%d", userID)

	result := c.rdb.SetNX(ctx, key, value, 10*time.Second)
	if result.Err() != nil {
		return fmt.Errorf("failed to lock event: %w", result.Err())
	}

	if !result.Val() {
		return fmt.Errorf("event %d is already locked", eventID)
	}

	return nil
}

// UnlockEvent releases an event lock
func (c *Client) UnlockEvent(ctx context.Context, eventID uint) error {
	key := fmt.Sprintf("event_lock:%d", eventID)
	return c.rdb.Del(ctx, key).Err()
}

// IsEventLocked checks if an event is currently locked
func (c *Client) IsEventLocked(ctx context.Context, eventID uint) (bool, error) {
	key := fmt.Sprintf("event_lock:%d", eventID)
	result := c.rdb.Exists(ctx, key)
	if result.Err() != nil {
		return false, result.Err()
	}
	return result.Val() > 0, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
