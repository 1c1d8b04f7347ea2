package domain

import "time"

// WalletTransactionType enumerates the kinds of wallet ledger entries.
type WalletTransactionType string

const (
	// TxDebtUnpaid: passenger debt collected from the passenger wallet on cancellation.
	TxDebtUnpaid WalletTransactionType = "DEBT_UNPAID"
	// TxUserDebt: passenger debt surrendered by the driver on a cash trip completion.
	TxUserDebt WalletTransactionType = "USER_DEBT"
	// TxUserAppShare: the passenger's app share the driver fronted in cash.
	TxUserAppShare WalletTransactionType = "USER_APP_SHARE"
	// TxCompleteTrip: trip price (or absorbed cash discount) credited to the driver.
	TxCompleteTrip WalletTransactionType = "COMPLETE_TRIP"
	// TxAppShare: the platform's cut debited from the driver.
	TxAppShare WalletTransactionType = "APP_SHARE"
	// TxCancelationRefund: prepaid amount returned to the passenger.
	TxCancelationRefund WalletTransactionType = "CANCELATION_REFUND"
	// TxCancelationPenalty: fixed penalty debited from the at-fault party.
	TxCancelationPenalty WalletTransactionType = "CANCELATION_PENALTY"
	// TxCancelationCompensation: fixed compensation credited to the other party.
	TxCancelationCompensation WalletTransactionType = "CANCELATION_COMPENSATION"
)

// WalletAccount selects which of a user's two ledgers an entry touches.
type WalletAccount string

const (
	AccountPassenger WalletAccount = "PASSENGER"
	AccountDriver    WalletAccount = "DRIVER"
)

// WalletEntry is one append-only ledger row. Every balance mutation is paired
// with exactly one entry whose CurrentBalance - PreviousBalance equals Amount.
type WalletEntry struct {
	ID              int64
	UserID          int64
	TripID          int64
	Account         WalletAccount
	Amount          float64
	Type            WalletTransactionType
	PreviousBalance float64
	CurrentBalance  float64
	CreatedAt       time.Time
}
