package repository

import (
	"context"

	"viptrip/internal/domain"
)

// TripDetail is a VIP trip joined with its trip row and passenger profile.
type TripDetail struct {
	VIPTrip   *domain.VIPTrip
	Trip      *domain.Trip
	Passenger *domain.PassengerProfile
}

// VIPTripRepository defines the persistence operations for VIP trip details.
type VIPTripRepository interface {
	// Create persists the VIP detail record for a trip.
	Create(ctx context.Context, vip *domain.VIPTrip) error

	// GetByTripID retrieves the VIP detail of a trip.
	GetByTripID(ctx context.Context, tripID int64) (*domain.VIPTrip, error)

	// GetDetail retrieves the VIP trip joined with its trip row and the
	// passenger's profile.
	GetDetail(ctx context.Context, tripID int64) (*TripDetail, error)
}
