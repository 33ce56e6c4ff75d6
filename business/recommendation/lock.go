package recommendation

import (
	"context"
	"time"
)

// RegenerationLock keeps instances from regenerating the same user at once.
// acquired=false with a nil error means a peer holds the lock.
type RegenerationLock interface {
	TryAcquire(ctx context.Context, userID string, ttl time.Duration) (release func(context.Context), acquired bool, err error)
}

// NoopLock always grants the lock. Used when no redis is configured, where
// the in-process single flight is the only coordination.
type NoopLock struct{}

func (NoopLock) TryAcquire(ctx context.Context, userID string, ttl time.Duration) (func(context.Context), bool, error) {
	return func(context.Context) {}, true, nil
}
