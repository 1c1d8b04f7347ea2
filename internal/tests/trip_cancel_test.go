package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"viptrip/internal/domain"
	"viptrip/internal/service"
)

// ──────────────────────────────────────────────
// CANCELLATION GUARDS
// ──────────────────────────────────────────────

// newCancelFixture wires a VIPTripService around mocks. The *sql.DB is nil,
// which is fine for every path that fails before the settlement transaction
// opens.
func newCancelFixture() (*service.VIPTripService, *MockTripRepository, *MockVIPTripRepository, *MockUserRepository, *MockLockStore, *MockCacheStore) {
	tripRepo := NewMockTripRepository()
	vipRepo := NewMockVIPTripRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()
	cacheStore := NewMockCacheStore()

	svc := service.NewVIPTripService(
		nil,
		tripRepo,
		vipRepo,
		userRepo,
		NewMockOfferRepository(),
		NewMockVehicleRepository(),
		lockStore,
		cacheStore,
		&MockArrivalValidator{},
		nil,
		20,
	)
	return svc, tripRepo, vipRepo, userRepo, lockStore, cacheStore
}

func TestCancelTrip_InvalidIDs(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newCancelFixture()
	ctx := context.Background()

	if _, err := svc.Cancel(ctx, 0, 1, service.CancelTripData{}); !errors.Is(err, service.ErrInvalidTripID) {
		t.Errorf("expected ErrInvalidTripID, got %v", err)
	}
	if _, err := svc.Cancel(ctx, 1, 0, service.CancelTripData{}); !errors.Is(err, service.ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestCancelTrip_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newCancelFixture()

	_, err := svc.Cancel(context.Background(), 99, 1, service.CancelTripData{})
	if !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound, got %v", err)
	}
}

func TestCancelTrip_WrongPassengerLooksLikeNotFound(t *testing.T) {
	t.Parallel()

	svc, tripRepo, vipRepo, _, _, _ := newCancelFixture()
	tripRepo.AddTrip(&domain.Trip{ID: 1, Status: domain.TripStatusPending})
	vipRepo.AddVIPTrip(&domain.VIPTrip{TripID: 1, PassengerID: 10})

	_, err := svc.Cancel(context.Background(), 1, 11, service.CancelTripData{})
	if !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound for another passenger's trip, got %v", err)
	}
}

func TestCancelTrip_TerminalStatesRejected(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.TripStatus{
		domain.TripStatusCancelled,
		domain.TripStatusCompleted,
		domain.TripStatusInProgress,
	} {
		svc, tripRepo, vipRepo, _, _, _ := newCancelFixture()
		tripRepo.AddTrip(&domain.Trip{ID: 1, Status: status, DriverID: 20})
		vipRepo.AddVIPTrip(&domain.VIPTrip{TripID: 1, PassengerID: 10})

		_, err := svc.Cancel(context.Background(), 1, 10, service.CancelTripData{})
		if !errors.Is(err, service.ErrTripNotCancelable) {
			t.Errorf("status %s: expected ErrTripNotCancelable, got %v", status, err)
		}
	}
}

func TestCancelTrip_NoDriver_DeletesWithoutSettlement(t *testing.T) {
	t.Parallel()

	svc, tripRepo, vipRepo, _, lockStore, cacheStore := newCancelFixture()
	tripRepo.AddTrip(&domain.Trip{
		ID:        1,
		Status:    domain.TripStatusPending,
		StartDate: time.Now().Add(5 * time.Minute), // inside the penalty window
	})
	vipRepo.AddVIPTrip(&domain.VIPTrip{TripID: 1, PassengerID: 10, PaymentMethod: domain.PaymentMethodCash, UserDebt: 30})

	result, err := svc.Cancel(context.Background(), 1, 10, service.CancelTripData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for a driverless trip, got %+v", result)
	}
	if tripRepo.CountTrips() != 0 {
		t.Errorf("expected trip to be deleted, %d trips remain", tripRepo.CountTrips())
	}
	if lockStore.AcquireCallCount != 0 {
		t.Error("driverless cancellation must not take the settlement lock")
	}
	if cacheStore.InvalidateCallCount != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", cacheStore.InvalidateCallCount)
	}
}

func TestCancelTrip_ConcurrentSettlementRejected(t *testing.T) {
	t.Parallel()

	svc, tripRepo, vipRepo, _, lockStore, _ := newCancelFixture()
	tripRepo.AddTrip(&domain.Trip{ID: 1, Status: domain.TripStatusPending, DriverID: 20})
	vipRepo.AddVIPTrip(&domain.VIPTrip{TripID: 1, PassengerID: 10})

	// Another settlement already holds the trip lock.
	lockStore.Lock(1)

	_, err := svc.Cancel(context.Background(), 1, 10, service.CancelTripData{})
	if !errors.Is(err, service.ErrSettlementInProgress) {
		t.Errorf("expected ErrSettlementInProgress, got %v", err)
	}
}

func TestDriverCancel_GuardsBeforeSettlement(t *testing.T) {
	t.Parallel()

	svc, tripRepo, vipRepo, _, lockStore, _ := newCancelFixture()
	tripRepo.AddTrip(&domain.Trip{ID: 1, Status: domain.TripStatusPending, DriverID: 20})
	vipRepo.AddVIPTrip(&domain.VIPTrip{TripID: 1, PassengerID: 10})

	ctx := context.Background()

	if _, err := svc.DriverCancel(ctx, 5, 20, service.CancelTripData{}); !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("unknown trip: expected ErrTripNotFound, got %v", err)
	}
	if _, err := svc.DriverCancel(ctx, 1, 21, service.CancelTripData{}); !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("another driver's trip: expected ErrTripNotFound, got %v", err)
	}

	lockStore.Lock(1)
	if _, err := svc.DriverCancel(ctx, 1, 20, service.CancelTripData{}); !errors.Is(err, service.ErrSettlementInProgress) {
		t.Errorf("expected ErrSettlementInProgress, got %v", err)
	}
}
