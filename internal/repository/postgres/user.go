package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// Create adds a new user and fills in its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (uuid, name, avatar, national_id, preferred_language, hobbies, fcm_tokens)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.q.QueryRowContext(ctx, query,
		user.UUID,
		user.Name,
		user.Avatar,
		user.NationalID,
		user.PreferredLanguage,
		pq.Array(user.Hobbies),
		pq.Array(user.FCMTokens),
	).Scan(&user.ID)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, uuid, name, COALESCE(avatar, ''), COALESCE(national_id, ''),
		       preferred_language, hobbies, fcm_tokens,
		       passenger_rate, driver_rate,
		       user_wallet_balance, driver_wallet_balance,
		       passenger_cancel_count, driver_cancel_count, discount_app_share_count,
		       created_at
		FROM users WHERE id = $1
	`

	var user domain.User
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.UUID,
		&user.Name,
		&user.Avatar,
		&user.NationalID,
		&user.PreferredLanguage,
		pq.Array(&user.Hobbies),
		pq.Array(&user.FCMTokens),
		&user.PassengerRate,
		&user.DriverRate,
		&user.UserWalletBalance,
		&user.DriverWalletBalance,
		&user.PassengerCancelCount,
		&user.DriverCancelCount,
		&user.DiscountAppShareCount,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetNotificationInfo retrieves the fields needed to push a message to a user.
func (r *UserRepository) GetNotificationInfo(ctx context.Context, id int64) (*domain.NotificationInfo, error) {
	query := `SELECT uuid, fcm_tokens, preferred_language FROM users WHERE id = $1`

	var info domain.NotificationInfo
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&info.UUID,
		pq.Array(&info.FCMTokens),
		&info.PreferredLanguage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &info, nil
}

// CountCompletedTrips counts the passenger's completed trips across both VIP
// and basic trip types. Basic trips count only when the passenger's own leg
// completed.
func (r *UserRepository) CountCompletedTrips(ctx context.Context, passengerID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM trips t
		WHERE t.status = $1
		  AND (
			EXISTS (
				SELECT 1 FROM vip_trips v
				WHERE v.trip_id = t.id AND v.passenger_id = $2
			)
			OR EXISTS (
				SELECT 1 FROM basic_trip_passengers b
				WHERE b.trip_id = t.id AND b.passenger_id = $2 AND b.status = $1
			)
		  )
	`

	var count int
	err := r.q.QueryRowContext(ctx, query, domain.TripStatusCompleted, passengerID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
