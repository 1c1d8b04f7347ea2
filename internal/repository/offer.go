package repository

import (
	"context"

	"viptrip/internal/domain"
)

// OfferRepository defines the read operations for trip offers.
type OfferRepository interface {
	// ListByTrip retrieves one page of offers for a trip, joined with the
	// driver profile and the driver's active vehicle.
	ListByTrip(ctx context.Context, tripID int64, page, limit int) (*domain.OfferPage, error)
}
