package repository

import (
	"context"

	"viptrip/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user and fills in its generated ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetNotificationInfo retrieves the fields needed to push a message to a user.
	GetNotificationInfo(ctx context.Context, id int64) (*domain.NotificationInfo, error)

	// CountCompletedTrips counts the passenger's completed trips across both
	// VIP and basic trip types (passenger-side completion only).
	CountCompletedTrips(ctx context.Context, passengerID int64) (int, error)
}
