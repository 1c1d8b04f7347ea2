package repository

import (
	"context"

	"viptrip/internal/domain"
)

// CancelationRepository defines the persistence operations for cancellation records.
type CancelationRepository interface {
	// Create persists the cancellation record for a trip.
	Create(ctx context.Context, c *domain.Cancelation) error
}
