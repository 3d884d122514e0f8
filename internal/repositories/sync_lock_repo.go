package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const syncLockKey = "odoosync:sync:lock"

// releaseScript deletes the lock only if it is still held by the caller, so
// a run whose lock expired cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisSyncLockRepository struct {
	client *redis.Client
}

func NewRedisSyncLockRepository(client *redis.Client) *RedisSyncLockRepository {
	return &RedisSyncLockRepository{client: client}
}

// Acquire takes the run lock for owner. It reports false, without error, when
// another run holds it.
func (r *RedisSyncLockRepository) Acquire(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, syncLockKey, owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	return ok, nil
}

func (r *RedisSyncLockRepository) Release(ctx context.Context, owner string) error {
	if err := releaseScript.Run(ctx, r.client, []string{syncLockKey}, owner).Err(); err != nil {
		return fmt.Errorf("failed to release sync lock: %w", err)
	}
	return nil
}
