package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// WalletRepository is a PostgreSQL implementation of repository.WalletRepository.
type WalletRepository struct {
	q Querier
}

// NewWalletRepository creates a new PostgreSQL wallet repository.
func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{q: db}
}

// NewWalletRepositoryWithTx creates a wallet repository using a transaction.
func NewWalletRepositoryWithTx(tx *sql.Tx) *WalletRepository {
	return &WalletRepository{q: tx}
}

// GetBalancesForUpdate reads both parties' wallet balances, locking both user
// rows for the duration of the enclosing transaction. Rows are locked in ID
// order so two concurrent settlements on the same pair cannot deadlock.
func (r *WalletRepository) GetBalancesForUpdate(ctx context.Context, passengerID, driverID int64) (float64, float64, error) {
	query := `
		SELECT id, user_wallet_balance, driver_wallet_balance
		FROM users
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := r.q.QueryContext(ctx, query, pq.Array([]int64{passengerID, driverID}))
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	var passenger, driver float64
	var seen int
	for rows.Next() {
		var id int64
		var userBalance, driverBalance float64
		if err := rows.Scan(&id, &userBalance, &driverBalance); err != nil {
			return 0, 0, err
		}
		if id == passengerID {
			passenger = userBalance
			seen++
		}
		if id == driverID {
			driver = driverBalance
			seen++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}
	if seen < 2 {
		return 0, 0, repository.ErrNotFound
	}

	return passenger, driver, nil
}

// ApplyEntries mutates the wallet balance for each entry and appends the
// matching transaction-log row.
func (r *WalletRepository) ApplyEntries(ctx context.Context, entries []domain.WalletEntry) error {
	for _, entry := range entries {
		if err := r.applyEntry(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (r *WalletRepository) applyEntry(ctx context.Context, entry domain.WalletEntry) error {
	var balanceColumn, logTable string
	switch entry.Account {
	case domain.AccountPassenger:
		balanceColumn = "user_wallet_balance"
		logTable = "passenger_wallet_transactions"
	case domain.AccountDriver:
		balanceColumn = "driver_wallet_balance"
		logTable = "driver_wallet_transactions"
	default:
		return fmt.Errorf("unknown wallet account %q", entry.Account)
	}

	update := fmt.Sprintf(`UPDATE users SET %s = %s + $1 WHERE id = $2`, balanceColumn, balanceColumn)
	result, err := r.q.ExecContext(ctx, update, entry.Amount, entry.UserID)
	if err != nil {
		return err
	}
	if err := requireOneRow(result); err != nil {
		return err
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (user_id, trip_id, amount, transaction_type, previous_balance, current_balance)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, logTable)
	_, err = r.q.ExecContext(ctx, insert,
		entry.UserID,
		entry.TripID,
		entry.Amount,
		entry.Type,
		entry.PreviousBalance,
		entry.CurrentBalance,
	)
	return err
}

// IncrementCancelCount bumps the user's lifetime cancellation counter for the
// given role.
func (r *WalletRepository) IncrementCancelCount(ctx context.Context, userID int64, account domain.WalletAccount) error {
	var column string
	switch account {
	case domain.AccountPassenger:
		column = "passenger_cancel_count"
	case domain.AccountDriver:
		column = "driver_cancel_count"
	default:
		return fmt.Errorf("unknown wallet account %q", account)
	}

	query := fmt.Sprintf(`UPDATE users SET %s = %s + 1 WHERE id = $1`, column, column)
	result, err := r.q.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// IncrementDiscountUsage bumps the passenger's lifetime app-share-discount
// usage counter.
func (r *WalletRepository) IncrementDiscountUsage(ctx context.Context, userID int64) error {
	query := `UPDATE users SET discount_app_share_count = discount_app_share_count + 1 WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// Ensure WalletRepository implements repository.WalletRepository.
var _ repository.WalletRepository = (*WalletRepository)(nil)
