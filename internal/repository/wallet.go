package repository

import (
	"context"

	"viptrip/internal/domain"
)

// WalletRepository defines the ledger operations on user wallets. All of its
// mutating methods are expected to run inside a settlement transaction.
type WalletRepository interface {
	// GetBalancesForUpdate reads the passenger's and driver's wallet balances,
	// locking both user rows for the duration of the enclosing transaction so
	// the previous_balance bookkeeping cannot go stale.
	GetBalancesForUpdate(ctx context.Context, passengerID, driverID int64) (passenger, driver float64, err error)

	// ApplyEntries mutates the wallet balance for each entry and appends the
	// matching transaction-log row. One balance mutation, one log row.
	ApplyEntries(ctx context.Context, entries []domain.WalletEntry) error

	// IncrementCancelCount bumps the user's lifetime cancellation counter for
	// the given role.
	IncrementCancelCount(ctx context.Context, userID int64, account domain.WalletAccount) error

	// IncrementDiscountUsage bumps the passenger's lifetime app-share-discount
	// usage counter.
	IncrementDiscountUsage(ctx context.Context, userID int64) error
}
