package repository

import "context"

// VehicleRepository defines the read operations for vehicles.
type VehicleRepository interface {
	// GetSerialNo retrieves the registration serial number of a vehicle.
	GetSerialNo(ctx context.Context, vehicleID int64) (string, error)
}
