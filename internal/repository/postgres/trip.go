package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `
	id, status, type, gender, features,
	COALESCE(driver_id, 0), COALESCE(vehicle_id, 0),
	price, distance, discount, start_date, end_date, pickup_time,
	driver_app_share, user_app_share, user_debt, driver_tax, user_tax, created_at
`

// Create persists a new trip and fills in its generated ID.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (status, type, gender, features, price, distance, discount, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return r.q.QueryRowContext(ctx, query,
		trip.Status,
		trip.Type,
		trip.Gender,
		pq.Array(trip.Features),
		trip.Price,
		trip.Distance,
		trip.Discount,
		trip.StartDate,
	).Scan(&trip.ID)
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a trip by ID, locking its row for the duration of
// the enclosing transaction.
func (r *TripRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// SetStatus transitions the trip to a new status.
func (r *TripRepository) SetStatus(ctx context.Context, id int64, status domain.TripStatus) error {
	query := `UPDATE trips SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// Complete marks the trip COMPLETED and stamps shares, taxes and end date.
func (r *TripRepository) Complete(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET status = $1, driver_app_share = $2, user_app_share = $3, user_debt = $4,
		    driver_tax = $5, user_tax = $6, end_date = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		trip.Status,
		trip.DriverAppShare,
		trip.UserAppShare,
		trip.UserDebt,
		trip.DriverTax,
		trip.UserTax,
		trip.EndDate,
		trip.ID,
	)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// Delete removes a trip row entirely. The VIP detail row is removed by the
// ON DELETE CASCADE on vip_trips.trip_id.
func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

func (r *TripRepository) scanOne(row *sql.Row) (*domain.Trip, error) {
	var trip domain.Trip
	var endDate, pickupTime sql.NullTime

	err := row.Scan(
		&trip.ID,
		&trip.Status,
		&trip.Type,
		&trip.Gender,
		pq.Array(&trip.Features),
		&trip.DriverID,
		&trip.VehicleID,
		&trip.Price,
		&trip.Distance,
		&trip.Discount,
		&trip.StartDate,
		&endDate,
		&pickupTime,
		&trip.DriverAppShare,
		&trip.UserAppShare,
		&trip.UserDebt,
		&trip.DriverTax,
		&trip.UserTax,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if endDate.Valid {
		trip.EndDate = endDate.Time
	}
	if pickupTime.Valid {
		trip.PickupTime = pickupTime.Time
	}

	return &trip, nil
}

func requireOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
