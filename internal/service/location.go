package service

import (
	"context"
	"math"
	"strconv"

	"viptrip/internal/redis"
)

// ArrivalValidator checks that a driver is physically where an operation
// requires them to be.
type ArrivalValidator interface {
	ValidateDriverAtDestination(ctx context.Context, driverID int64, lat, lng float64) error
}

// LocationService answers arrival checks from the drivers' live locations and
// accepts location pings from driver devices.
type LocationService struct {
	locations    redis.LocationStoreInterface
	radiusMeters float64
}

// NewLocationService creates a new LocationService. radiusMeters is how close
// to the destination a driver must be to end a trip there.
func NewLocationService(locations redis.LocationStoreInterface, radiusMeters float64) *LocationService {
	return &LocationService{locations: locations, radiusMeters: radiusMeters}
}

// UpdateLocation records a driver's position ping.
func (s *LocationService) UpdateLocation(ctx context.Context, driverID int64, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidLocation
	}
	return s.locations.UpdateLocation(ctx, formatDriverID(driverID), lat, lng)
}

// ValidateDriverAtDestination fails unless the driver's last reported
// position is within the configured radius of (lat, lng).
func (s *LocationService) ValidateDriverAtDestination(ctx context.Context, driverID int64, lat, lng float64) error {
	loc, err := s.locations.GetLocation(ctx, formatDriverID(driverID))
	if err != nil {
		return err
	}
	if loc == nil {
		return ErrDriverLocationUnknown
	}

	if haversineMeters(loc.Lat, loc.Lng, lat, lng) > s.radiusMeters {
		return ErrDriverNotAtDestination
	}
	return nil
}

func formatDriverID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// haversineMeters is the great-circle distance between two coordinates.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusMeters = 6371000.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Ensure LocationService implements ArrivalValidator.
var _ ArrivalValidator = (*LocationService)(nil)
