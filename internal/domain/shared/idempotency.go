package shared

import (
	"context"
	"time"
)

// IdempotencyStore guards against duplicate submissions. A key is
// claimed atomically with a TTL; the second claim within the window
// loses.
type IdempotencyStore interface {
	// MarkProcessed claims a key with a TTL. Returns true if the key was
	// newly claimed, false if it was already claimed within its window.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key is currently claimed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store
	Close() error
}
