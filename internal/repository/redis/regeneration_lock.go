package redis

import (
	"context"
	"fmt"
	"time"
	"watchwise/business/recommendation"
	"watchwise/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-taken by a peer is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RegenerationLock struct {
	client *redis.Client
}

var _ recommendation.RegenerationLock = (*RegenerationLock)(nil)

func NewRegenerationLock(client *redis.Client) *RegenerationLock {
	return &RegenerationLock{
		client: client,
	}
}

func lockKey(userID string) string {
	// key format: "reco:lock:{user_id}"
	return fmt.Sprintf("reco:lock:%s", userID)
}

func (l *RegenerationLock) TryAcquire(ctx context.Context, userID string, ttl time.Duration) (func(context.Context), bool, error) {
	key := lockKey(userID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire regeneration lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			logger.Warn("Failed to release regeneration lock", "user_id", userID, "error", err)
		}
	}

	return release, true, nil
}
