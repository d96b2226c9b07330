package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func NewClient(cfg *config.Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return &Client{rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func flashKey(sessionID string) string {
	return fmt.Sprintf("flash:%s", sessionID)
}

// PushFlash queues a notice for the browser session and refreshes the
// queue's expiry.
func (c *Client) PushFlash(ctx context.Context, sessionID, message string, ttl time.Duration) error {
	key := flashKey(sessionID)

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, message)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push flash: %w", err)
	}
	return nil
}

// PopFlashes returns the queued notices in order and clears the queue
func (c *Client) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	key := flashKey(sessionID)

	var messages *redis.StringSliceCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		messages = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pop flashes: %w", err)
	}
	return messages.Val(), nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
