package repository

import (
	"context"

	"viptrip/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip and fills in its generated ID.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)

	// GetByIDForUpdate retrieves a trip by ID, locking its row for the
	// duration of the enclosing transaction. Settlement operations take this
	// lock first so two of them can never run against the same trip.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Trip, error)

	// SetStatus transitions the trip to a new status.
	SetStatus(ctx context.Context, id int64, status domain.TripStatus) error

	// Complete marks the trip COMPLETED and stamps shares, taxes and end date.
	Complete(ctx context.Context, trip *domain.Trip) error

	// Delete removes a trip row entirely. Used only for trips that never got
	// a driver assigned.
	Delete(ctx context.Context, id int64) error
}
