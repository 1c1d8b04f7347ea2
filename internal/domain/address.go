package domain

import "time"

// RecentAddress is a destination remembered for a passenger after a completed trip.
type RecentAddress struct {
	ID          int64
	UserID      int64
	Alias       string
	Description string
	Lat         float64
	Lng         float64
	CreatedAt   time.Time
}
