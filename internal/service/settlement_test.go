package service

import (
	"testing"
	"time"

	"viptrip/internal/domain"
)

func TestCancellationPenaltyDue_WindowBoundaries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		startDate time.Time
		want      bool
	}{
		{"start well in the future", now.Add(2 * time.Hour), false},
		{"one second outside the window", now.Add(30*time.Minute + time.Second), false},
		{"exactly on the window boundary", now.Add(30 * time.Minute), true},
		{"inside the window", now.Add(10 * time.Minute), true},
		{"trip already started", now.Add(-time.Hour), true},
	}

	for _, tc := range cases {
		if got := cancellationPenaltyDue(now, tc.startDate); got != tc.want {
			t.Errorf("%s: cancellationPenaltyDue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRefundAmount(t *testing.T) {
	t.Parallel()

	// price + app share - app share discount - discount
	if got := refundAmount(100, 10, 2, 0); got != 108 {
		t.Errorf("refundAmount = %v, want 108", got)
	}
	if got := refundAmount(100, 0, 0, 15); got != 85 {
		t.Errorf("refundAmount with discount = %v, want 85", got)
	}
}

func TestSettlement_EntryBalancesChainPerAccount(t *testing.T) {
	t.Parallel()

	st := NewSettlement(7, 1, 2, 100, 50)
	st.CollectPassengerDebt(10)
	st.ApplyPassengerPenalty()
	st.RefundPassenger(40)
	st.ChargeAppShare(20)

	prev := map[domain.WalletAccount]float64{
		domain.AccountPassenger: 100,
		domain.AccountDriver:    50,
	}

	for i, e := range st.Entries() {
		if e.CurrentBalance-e.PreviousBalance != e.Amount {
			t.Errorf("entry %d: current-previous = %v, want amount %v", i, e.CurrentBalance-e.PreviousBalance, e.Amount)
		}
		if e.PreviousBalance != prev[e.Account] {
			t.Errorf("entry %d: previous balance %v, want %v", i, e.PreviousBalance, prev[e.Account])
		}
		prev[e.Account] = e.CurrentBalance
		if e.TripID != 7 {
			t.Errorf("entry %d: trip id %d, want 7", i, e.TripID)
		}
	}
}

func TestSettlement_PassengerCancel_CashDebtAndPenalty(t *testing.T) {
	t.Parallel()

	st := NewSettlement(1, 10, 20, 100, 50)
	st.CollectPassengerDebt(10)
	st.ApplyPassengerPenalty()

	entries := st.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	debt := entries[0]
	if debt.Type != domain.TxDebtUnpaid || debt.Amount != -10 || debt.CurrentBalance != 90 {
		t.Errorf("debt entry = %+v", debt)
	}

	penalty := entries[1]
	if penalty.Account != domain.AccountPassenger || penalty.Type != domain.TxCancelationPenalty {
		t.Errorf("penalty entry = %+v", penalty)
	}
	if penalty.Amount != -CancelationPenalty || penalty.CurrentBalance != 65 {
		t.Errorf("penalty amount/balance = %v/%v, want -25/65", penalty.Amount, penalty.CurrentBalance)
	}

	compensation := entries[2]
	if compensation.Account != domain.AccountDriver || compensation.Type != domain.TxCancelationCompensation {
		t.Errorf("compensation entry = %+v", compensation)
	}
	if compensation.Amount != CancelationPenalty || compensation.CurrentBalance != 75 {
		t.Errorf("compensation amount/balance = %v/%v, want 25/75", compensation.Amount, compensation.CurrentBalance)
	}

	// A penalized cancellation counts against both parties' records.
	if st.PassengerCancelIncrement != 1 || st.DriverCancelIncrement != 1 {
		t.Errorf("cancel increments = %d/%d, want 1/1", st.PassengerCancelIncrement, st.DriverCancelIncrement)
	}
}

func TestSettlement_PrepaidRefundWithoutPenalty(t *testing.T) {
	t.Parallel()

	st := NewSettlement(1, 10, 20, 0, 0)
	st.RefundPassenger(refundAmount(100, 10, 2, 0))

	entries := st.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Type != domain.TxCancelationRefund || entries[0].Amount != 108 {
		t.Errorf("refund entry = %+v, want CANCELATION_REFUND of 108", entries[0])
	}
	if st.PassengerBalance() != 108 {
		t.Errorf("passenger balance = %v, want 108", st.PassengerBalance())
	}
	if st.DriverBalance() != 0 {
		t.Errorf("driver balance = %v, want 0", st.DriverBalance())
	}
}

func TestSettlement_DriverPenaltyCompensatesPassenger(t *testing.T) {
	t.Parallel()

	st := NewSettlement(1, 10, 20, 0, 100)
	st.ApplyDriverPenalty()
	st.RefundPassenger(refundAmount(80, 0, 0, 0))

	if st.DriverBalance() != 75 {
		t.Errorf("driver balance = %v, want 75", st.DriverBalance())
	}
	// Compensation lands before the refund, so the refund chains on top of it.
	if st.PassengerBalance() != 105 {
		t.Errorf("passenger balance = %v, want 105", st.PassengerBalance())
	}
	if st.DriverCancelIncrement != 1 || st.PassengerCancelIncrement != 1 {
		t.Errorf("cancel increments = %d/%d, want 1/1", st.DriverCancelIncrement, st.PassengerCancelIncrement)
	}
}

func TestSettlement_CashCompletion(t *testing.T) {
	t.Parallel()

	// Cash trip, price 100, platform cut 20, user app share 15: the driver
	// holds the cash and ends up owing 35 through the wallet.
	st := NewSettlement(1, 10, 20, 0, 0)
	st.CollectDriverAppShare(15)
	st.ChargeAppShare(20)

	if st.DriverBalance() != -35 {
		t.Errorf("driver balance = %v, want -35", st.DriverBalance())
	}

	entries := st.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Type != domain.TxUserAppShare {
		t.Errorf("first entry type = %s, want USER_APP_SHARE", entries[0].Type)
	}
	if entries[1].Type != domain.TxAppShare {
		t.Errorf("second entry type = %s, want APP_SHARE", entries[1].Type)
	}
}

func TestSettlement_PrepaidCompletionPaysDriver(t *testing.T) {
	t.Parallel()

	st := NewSettlement(1, 10, 20, 0, 0)
	st.CreditTripPrice(100)
	st.ChargeAppShare(20)

	if st.DriverBalance() != 80 {
		t.Errorf("driver balance = %v, want 80", st.DriverBalance())
	}
}

func TestSettlement_ZeroAppShareStillLogged(t *testing.T) {
	t.Parallel()

	st := NewSettlement(1, 10, 20, 0, 0)
	st.ChargeAppShare(0)

	entries := st.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Amount != 0 || entries[0].Type != domain.TxAppShare {
		t.Errorf("zero app-share entry = %+v", entries[0])
	}
}

func TestSettlement_MarkDiscountUsed_NoWalletEntry(t *testing.T) {
	t.Parallel()

	st := NewSettlement(1, 10, 20, 0, 0)
	st.MarkDiscountUsed()

	if len(st.Entries()) != 0 {
		t.Errorf("expected no entries, got %d", len(st.Entries()))
	}
	if st.DiscountUsageIncrement != 1 {
		t.Errorf("discount usage increment = %d, want 1", st.DiscountUsageIncrement)
	}
}
