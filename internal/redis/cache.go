package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TripDetailCacheTTL is deliberately short: trip status can flip at any time.
const TripDetailCacheTTL = 30 * time.Second

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

func tripDetailKey(tripID int64) string {
	return fmt.Sprintf("cache:trip_detail:%d", tripID)
}

// GetTripDetail retrieves a cached trip-detail payload. The boolean is false
// on a cache miss.
func (s *CacheStore) GetTripDetail(ctx context.Context, tripID int64) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, tripDetailKey(tripID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// SetTripDetail caches a trip-detail payload.
func (s *CacheStore) SetTripDetail(ctx context.Context, tripID int64, payload []byte) error {
	return s.client.Set(ctx, tripDetailKey(tripID), payload, TripDetailCacheTTL).Err()
}

// InvalidateTrip removes a trip's cached detail after a status mutation.
func (s *CacheStore) InvalidateTrip(ctx context.Context, tripID int64) error {
	return s.client.Del(ctx, tripDetailKey(tripID)).Err()
}
