package postgres

import (
	"context"
	"database/sql"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// RecentAddressRepository is a PostgreSQL implementation of repository.RecentAddressRepository.
type RecentAddressRepository struct {
	q Querier
}

// NewRecentAddressRepository creates a new PostgreSQL recent address repository.
func NewRecentAddressRepository(db *sql.DB) *RecentAddressRepository {
	return &RecentAddressRepository{q: db}
}

// NewRecentAddressRepositoryWithTx creates a recent address repository using a transaction.
func NewRecentAddressRepositoryWithTx(tx *sql.Tx) *RecentAddressRepository {
	return &RecentAddressRepository{q: tx}
}

// Create remembers a destination for a passenger.
func (r *RecentAddressRepository) Create(ctx context.Context, addr *domain.RecentAddress) error {
	query := `
		INSERT INTO recent_addresses (user_id, alias, description, lat, lng)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.q.QueryRowContext(ctx, query,
		addr.UserID,
		addr.Alias,
		addr.Description,
		addr.Lat,
		addr.Lng,
	).Scan(&addr.ID)
}

// Ensure RecentAddressRepository implements repository.RecentAddressRepository.
var _ repository.RecentAddressRepository = (*RecentAddressRepository)(nil)
