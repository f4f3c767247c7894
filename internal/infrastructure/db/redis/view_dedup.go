package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultViewWindow = time.Hour

// ViewDeduper counts a profile view once per viewer and window.
// Key format: views:<profile_id>:<viewer_id>
type ViewDeduper struct {
	client *redis.Client
	window time.Duration
}

// NewViewDeduper creates a ViewDeduper wrapping the given Redis client.
func NewViewDeduper(client *redis.Client, window time.Duration) *ViewDeduper {
	if window <= 0 {
		window = defaultViewWindow
	}
	return &ViewDeduper{client: client, window: window}
}

// FirstView sets the marker only if it is absent, so concurrent requests
// from the same viewer count once.
func (d *ViewDeduper) FirstView(ctx context.Context, viewerID, profileID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, viewKey(viewerID, profileID), "1", d.window).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup: %w", err)
	}
	return ok, nil
}

func viewKey(viewerID, profileID string) string {
	return fmt.Sprintf("views:%s:%s", profileID, viewerID)
}
