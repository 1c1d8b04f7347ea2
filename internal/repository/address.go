package repository

import (
	"context"

	"viptrip/internal/domain"
)

// RecentAddressRepository defines the persistence operations for recent addresses.
type RecentAddressRepository interface {
	// Create remembers a destination for a passenger.
	Create(ctx context.Context, addr *domain.RecentAddress) error
}
