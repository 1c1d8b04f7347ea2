package postgres

import (
	"context"
	"database/sql"
	"errors"

	"viptrip/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// GetSerialNo retrieves the registration serial number of a vehicle.
func (r *VehicleRepository) GetSerialNo(ctx context.Context, vehicleID int64) (string, error) {
	query := `SELECT serial_no FROM vehicles WHERE id = $1`

	var serialNo string
	err := r.q.QueryRowContext(ctx, query, vehicleID).Scan(&serialNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return serialNo, nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
