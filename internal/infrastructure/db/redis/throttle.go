package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle allows at most limit actions per key within window.
// Key format: throttle:<key>
type Throttle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewThrottle(client *redis.Client, limit int64, window time.Duration) *Throttle {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Hour
	}
	return &Throttle{client: client, limit: limit, window: window}
}

// Allow increments the key's counter and starts its window on first use.
func (t *Throttle) Allow(ctx context.Context, key string) (bool, error) {
	k := throttleKey(key)

	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("throttle: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= t.limit, nil
}

func throttleKey(key string) string {
	return "throttle:" + key
}
