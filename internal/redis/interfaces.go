package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for driver location operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error
	GetLocation(ctx context.Context, driverID string) (*DriverLocation, error)
	RemoveLocation(ctx context.Context, driverID string) error
}

// LockStoreInterface defines the interface for per-trip settlement locking.
type LockStoreInterface interface {
	AcquireTripLock(ctx context.Context, tripID int64, ttl time.Duration) (bool, error)
	ReleaseTripLock(ctx context.Context, tripID int64) error
}

// CacheStoreInterface defines the interface for trip-detail caching.
type CacheStoreInterface interface {
	GetTripDetail(ctx context.Context, tripID int64) ([]byte, bool, error)
	SetTripDetail(ctx context.Context, tripID int64, payload []byte) error
	InvalidateTrip(ctx context.Context, tripID int64) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ CacheStoreInterface    = (*CacheStore)(nil)
)
