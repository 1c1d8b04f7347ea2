package postgres

import (
	"context"
	"database/sql"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// CancelationRepository is a PostgreSQL implementation of repository.CancelationRepository.
type CancelationRepository struct {
	q Querier
}

// NewCancelationRepository creates a new PostgreSQL cancelation repository.
func NewCancelationRepository(db *sql.DB) *CancelationRepository {
	return &CancelationRepository{q: db}
}

// NewCancelationRepositoryWithTx creates a cancelation repository using a transaction.
func NewCancelationRepositoryWithTx(tx *sql.Tx) *CancelationRepository {
	return &CancelationRepository{q: tx}
}

// Create persists the cancellation record for a trip.
func (r *CancelationRepository) Create(ctx context.Context, c *domain.Cancelation) error {
	query := `
		INSERT INTO cancelations (trip_id, canceled_by, reason, note, passenger_id, driver_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.q.QueryRowContext(ctx, query,
		c.TripID,
		c.CanceledBy,
		c.Reason,
		c.Note,
		c.PassengerID,
		c.DriverID,
	).Scan(&c.ID)
}

// Ensure CancelationRepository implements repository.CancelationRepository.
var _ repository.CancelationRepository = (*CancelationRepository)(nil)
