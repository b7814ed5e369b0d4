package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmitGuard debounces repeated submissions using SET NX with a TTL.
// Key format: guard:<key>
type SubmitGuard struct {
	client *redis.Client
	window time.Duration
}

// NewSubmitGuard creates a guard that holds each key for window.
func NewSubmitGuard(client *redis.Client, window time.Duration) *SubmitGuard {
	return &SubmitGuard{client: client, window: window}
}

// Acquire reports whether key was free. A held key stays held until the
// window expires.
func (g *SubmitGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.window).Result()
	if err != nil {
		return false, fmt.Errorf("guard acquire: %w", err)
	}
	return ok, nil
}

func (g *SubmitGuard) key(key string) string {
	return "guard:" + key
}
