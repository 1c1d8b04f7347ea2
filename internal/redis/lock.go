package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireTripLock attempts to acquire the settlement lock for the given trip.
// Returns true if the lock was acquired, false if another settlement is
// already running against that trip.
func (s *LockStore) AcquireTripLock(ctx context.Context, tripID int64, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:trip:%d", tripID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseTripLock releases the settlement lock for the given trip.
func (s *LockStore) ReleaseTripLock(ctx context.Context, tripID int64) error {
	key := fmt.Sprintf("lock:trip:%d", tripID)

	return s.client.Del(ctx, key).Err()
}
