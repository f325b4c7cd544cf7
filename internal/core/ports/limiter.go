package ports

import "context"

// LoginLimiter throttles authentication attempts per key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
