package tests

import (
	"context"
	"errors"
	"testing"

	"viptrip/internal/domain"
	"viptrip/internal/service"
)

// ──────────────────────────────────────────────
// TRIP COMPLETION GUARDS
// ──────────────────────────────────────────────

type endTripFixture struct {
	svc       *service.VIPTripService
	tripRepo  *MockTripRepository
	vipRepo   *MockVIPTripRepository
	userRepo  *MockUserRepository
	lockStore *MockLockStore
	arrival   *MockArrivalValidator
}

func newEndTripFixture() *endTripFixture {
	f := &endTripFixture{
		tripRepo:  NewMockTripRepository(),
		vipRepo:   NewMockVIPTripRepository(),
		userRepo:  NewMockUserRepository(),
		lockStore: NewMockLockStore(),
		arrival:   &MockArrivalValidator{},
	}

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(3, "SER-003")

	f.userRepo.AddUser(&domain.User{ID: 20, UUID: "driver-uuid", NationalID: "1098765432"})
	f.userRepo.AddUser(&domain.User{ID: 10, UUID: "passenger-uuid", FCMTokens: []string{"tok"}})

	f.svc = service.NewVIPTripService(
		nil,
		f.tripRepo,
		f.vipRepo,
		f.userRepo,
		NewMockOfferRepository(),
		vehicleRepo,
		f.lockStore,
		NewMockCacheStore(),
		f.arrival,
		nil,
		20,
	)
	return f
}

func (f *endTripFixture) addTrip(status domain.TripStatus) {
	f.tripRepo.AddTrip(&domain.Trip{ID: 1, Status: status, DriverID: 20, VehicleID: 3, Price: 100})
	f.vipRepo.AddVIPTrip(&domain.VIPTrip{TripID: 1, PassengerID: 10, PaymentMethod: domain.PaymentMethodCash})
}

func TestEndTrip_NotFound(t *testing.T) {
	t.Parallel()

	f := newEndTripFixture()

	_, err := f.svc.EndTrip(context.Background(), 20, 99)
	if !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound, got %v", err)
	}
}

func TestEndTrip_WrongDriverLooksLikeNotFound(t *testing.T) {
	t.Parallel()

	f := newEndTripFixture()
	f.addTrip(domain.TripStatusInProgress)

	_, err := f.svc.EndTrip(context.Background(), 21, 1)
	if !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound for another driver's trip, got %v", err)
	}
	if f.arrival.CallCount != 0 {
		t.Error("arrival must not be checked for another driver's trip")
	}
}

func TestEndTrip_AlreadyCompleted(t *testing.T) {
	t.Parallel()

	f := newEndTripFixture()
	f.addTrip(domain.TripStatusCompleted)

	_, err := f.svc.EndTrip(context.Background(), 20, 1)
	if !errors.Is(err, service.ErrTripAlreadyCompleted) {
		t.Errorf("expected ErrTripAlreadyCompleted, got %v", err)
	}
	if f.arrival.CallCount != 0 {
		t.Error("a completed trip must be rejected before the arrival check")
	}
}

func TestEndTrip_DriverNotAtDestination(t *testing.T) {
	t.Parallel()

	f := newEndTripFixture()
	f.addTrip(domain.TripStatusInProgress)
	f.arrival.Err = service.ErrDriverNotAtDestination

	_, err := f.svc.EndTrip(context.Background(), 20, 1)
	if !errors.Is(err, service.ErrDriverNotAtDestination) {
		t.Errorf("expected ErrDriverNotAtDestination, got %v", err)
	}
	if f.lockStore.AcquireCallCount != 0 {
		t.Error("settlement lock must not be taken when the driver is not there")
	}
}

func TestEndTrip_DriverLocationUnknown(t *testing.T) {
	t.Parallel()

	f := newEndTripFixture()
	f.addTrip(domain.TripStatusInProgress)
	f.arrival.Err = service.ErrDriverLocationUnknown

	_, err := f.svc.EndTrip(context.Background(), 20, 1)
	if !errors.Is(err, service.ErrDriverLocationUnknown) {
		t.Errorf("expected ErrDriverLocationUnknown, got %v", err)
	}
}

func TestEndTrip_ConcurrentSettlementRejected(t *testing.T) {
	t.Parallel()

	f := newEndTripFixture()
	f.addTrip(domain.TripStatusInProgress)
	f.lockStore.Lock(1)

	_, err := f.svc.EndTrip(context.Background(), 20, 1)
	if !errors.Is(err, service.ErrSettlementInProgress) {
		t.Errorf("expected ErrSettlementInProgress, got %v", err)
	}
}
