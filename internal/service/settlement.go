package service

import (
	"time"

	"viptrip/internal/domain"
)

// CancelationPenalty is the fixed amount charged to the at-fault party on a
// penalized cancellation and paid to the other party.
const CancelationPenalty = 25.0

// penaltyWindow is how close to the scheduled start a passenger cancellation
// becomes penalizable.
const penaltyWindow = 30 * time.Minute

// taxRate applies to both the driver's and the passenger's app share on
// completion.
const taxRate = 0.15

// cancellationPenaltyDue reports whether a cancellation at time now falls
// inside the penalty window of a trip scheduled for startDate. A trip is
// penalizable once it is less than 30 minutes away, not only after it starts.
func cancellationPenaltyDue(now, startDate time.Time) bool {
	return !now.Add(penaltyWindow).Before(startDate)
}

// refundAmount is what a prepaid passenger gets back on cancellation.
func refundAmount(price, userAppShare, appShareDiscount, discount float64) float64 {
	return price + userAppShare - appShareDiscount - discount
}

// Settlement accumulates the wallet mutations of a single trip operation.
// It is seeded with both parties' balances as read inside the settlement
// transaction and keeps a running balance per party, so every entry's
// previous/current pair reflects exactly the delta applied. Nothing here
// touches storage; repositories apply the resulting entries.
type Settlement struct {
	tripID      int64
	passengerID int64
	driverID    int64

	passengerBalance float64
	driverBalance    float64

	entries []domain.WalletEntry

	// Counter increments to apply alongside the entries.
	PassengerCancelIncrement int
	DriverCancelIncrement    int
	DiscountUsageIncrement   int
}

// NewSettlement starts a settlement for one trip between one passenger and
// one driver.
func NewSettlement(tripID, passengerID, driverID int64, passengerBalance, driverBalance float64) *Settlement {
	return &Settlement{
		tripID:           tripID,
		passengerID:      passengerID,
		driverID:         driverID,
		passengerBalance: passengerBalance,
		driverBalance:    driverBalance,
	}
}

// Entries returns the accumulated ledger rows in application order.
func (s *Settlement) Entries() []domain.WalletEntry {
	return s.entries
}

// PassengerBalance returns the passenger's running balance.
func (s *Settlement) PassengerBalance() float64 {
	return s.passengerBalance
}

// DriverBalance returns the driver's running balance.
func (s *Settlement) DriverBalance() float64 {
	return s.driverBalance
}

func (s *Settlement) passenger(amount float64, kind domain.WalletTransactionType) {
	previous := s.passengerBalance
	s.passengerBalance += amount
	s.entries = append(s.entries, domain.WalletEntry{
		UserID:          s.passengerID,
		TripID:          s.tripID,
		Account:         domain.AccountPassenger,
		Amount:          amount,
		Type:            kind,
		PreviousBalance: previous,
		CurrentBalance:  s.passengerBalance,
	})
}

func (s *Settlement) driver(amount float64, kind domain.WalletTransactionType) {
	previous := s.driverBalance
	s.driverBalance += amount
	s.entries = append(s.entries, domain.WalletEntry{
		UserID:          s.driverID,
		TripID:          s.tripID,
		Account:         domain.AccountDriver,
		Amount:          amount,
		Type:            kind,
		PreviousBalance: previous,
		CurrentBalance:  s.driverBalance,
	})
}

// CollectPassengerDebt recovers an outstanding cash-trip debt from the
// passenger wallet on cancellation.
func (s *Settlement) CollectPassengerDebt(debt float64) {
	s.passenger(-debt, domain.TxDebtUnpaid)
}

// ApplyPassengerPenalty charges the cancelling passenger the fixed penalty
// and compensates the driver. Both parties' lifetime cancellation counters
// increment.
func (s *Settlement) ApplyPassengerPenalty() {
	s.passenger(-CancelationPenalty, domain.TxCancelationPenalty)
	s.driver(CancelationPenalty, domain.TxCancelationCompensation)
	s.PassengerCancelIncrement++
	s.DriverCancelIncrement++
}

// ApplyDriverPenalty charges the cancelling driver the fixed penalty and
// compensates the passenger. Both parties' lifetime cancellation counters
// increment.
func (s *Settlement) ApplyDriverPenalty() {
	s.driver(-CancelationPenalty, domain.TxCancelationPenalty)
	s.passenger(CancelationPenalty, domain.TxCancelationCompensation)
	s.DriverCancelIncrement++
	s.PassengerCancelIncrement++
}

// RefundPassenger returns a prepaid amount to the passenger wallet.
func (s *Settlement) RefundPassenger(amount float64) {
	s.passenger(amount, domain.TxCancelationRefund)
}

// CollectDriverDebt makes the driver surrender the passenger debt they were
// fronted in cash.
func (s *Settlement) CollectDriverDebt(debt float64) {
	s.driver(-debt, domain.TxUserDebt)
}

// CollectDriverAppShare makes the driver surrender the passenger's app share
// they collected in cash.
func (s *Settlement) CollectDriverAppShare(amount float64) {
	s.driver(-amount, domain.TxUserAppShare)
}

// CreditTripPrice pays the driver the trip price on a prepaid completion.
func (s *Settlement) CreditTripPrice(price float64) {
	s.driver(price, domain.TxCompleteTrip)
}

// CreditCashDiscount reimburses the driver for a discount they absorbed on a
// cash trip.
func (s *Settlement) CreditCashDiscount(discount float64) {
	s.driver(discount, domain.TxCompleteTrip)
}

// ChargeAppShare debits the platform's cut from the driver. A log row is
// written even when the amount is zero.
func (s *Settlement) ChargeAppShare(appShare float64) {
	s.driver(-appShare, domain.TxAppShare)
}

// MarkDiscountUsed records that the passenger consumed an app-share discount.
// Counter only; it never logs a wallet transaction.
func (s *Settlement) MarkDiscountUsed() {
	s.DiscountUsageIncrement++
}
