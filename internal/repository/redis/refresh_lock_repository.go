package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshLockRepository serializes recommendation refreshes per user across
// instances. Two concurrent refreshes for the same user could otherwise
// interleave their delete/insert cycles.
type RefreshLockRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRefreshLockRepository(client *redis.Client, ttl time.Duration) *RefreshLockRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RefreshLockRepository{
		client: client,
		ttl:    ttl,
	}
}

// Acquire takes the per-user refresh lock. Returns false when another
// refresh currently holds it.
func (r *RefreshLockRepository) Acquire(ctx context.Context, userID uint) (bool, error) {
	// key format: "reco:refresh-lock:{user_id}"
	key := fmt.Sprintf("reco:refresh-lock:%d", userID)

	ok, err := r.client.SetNX(ctx, key, "1", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire refresh lock: %w", err)
	}

	return ok, nil
}

// Release drops the per-user refresh lock.
func (r *RefreshLockRepository) Release(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("reco:refresh-lock:%d", userID)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release refresh lock: %w", err)
	}

	return nil
}
