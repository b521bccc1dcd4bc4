package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity
// errors: a missing or unreachable Redis degrades to cache misses, it never
// fails a request. Notifications and question reads stay correct without it.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// fail safe: ignore redis errors
		return nil
	}
	return nil
}

// GetInt64 reads a counter value. ok is false on miss, malformed value, or
// redis being unavailable.
func (c *Client) GetInt64(ctx context.Context, key string) (val int64, ok bool) {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return 0, false
	}
	parsed, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// SetInt64 stores a counter value with TTL.
func (c *Client) SetInt64(ctx context.Context, key string, val int64, ttl time.Duration) error {
	return c.Set(ctx, key, []byte(strconv.FormatInt(val, 10)), ttl)
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return nil
	}
	return nil
}
