package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"viptrip/internal/domain"
	"viptrip/internal/service"
)

// ──────────────────────────────────────────────
// TRIP DETAIL & OFFERS READ PATHS
// ──────────────────────────────────────────────

func newReadFixture() (*service.VIPTripService, *MockVIPTripRepository, *MockUserRepository, *MockOfferRepository, *MockCacheStore) {
	vipRepo := NewMockVIPTripRepository()
	userRepo := NewMockUserRepository()
	offerRepo := NewMockOfferRepository()
	cacheStore := NewMockCacheStore()

	svc := service.NewVIPTripService(
		nil,
		NewMockTripRepository(),
		vipRepo,
		userRepo,
		offerRepo,
		NewMockVehicleRepository(),
		NewMockLockStore(),
		cacheStore,
		&MockArrivalValidator{},
		nil,
		20,
	)
	return svc, vipRepo, userRepo, offerRepo, cacheStore
}

func TestGetTrip_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newReadFixture()

	_, err := svc.GetOne(context.Background(), 99)
	if !errors.Is(err, service.ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound, got %v", err)
	}
}

func TestGetTrip_CacheMissFetchesAndCaches(t *testing.T) {
	t.Parallel()

	svc, vipRepo, userRepo, _, cacheStore := newReadFixture()
	vipRepo.AddVIPTrip(&domain.VIPTrip{TripID: 1, PassengerID: 10, PaymentMethod: domain.PaymentMethodWallet})
	vipRepo.AddPassenger(&domain.PassengerProfile{ID: 10, Name: "Sara", PassengerRate: 4.8})
	userRepo.CompletedTrips = 3

	result, err := svc.GetOne(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.VIPTrip.PassengerID != 10 {
		t.Errorf("passenger id = %d, want 10", result.VIPTrip.PassengerID)
	}
	if result.Passenger == nil || result.Passenger.Name != "Sara" {
		t.Errorf("passenger = %+v", result.Passenger)
	}
	if result.CompletedTrips != 3 {
		t.Errorf("completed trips = %d, want 3", result.CompletedTrips)
	}
	if cacheStore.SetCallCount != 1 {
		t.Errorf("expected 1 cache write, got %d", cacheStore.SetCallCount)
	}
}

func TestGetTrip_CacheHitSkipsRepositories(t *testing.T) {
	t.Parallel()

	svc, _, _, _, cacheStore := newReadFixture()

	cached := service.TripDetailResult{
		Trip:           &domain.Trip{ID: 1, Status: domain.TripStatusPending},
		VIPTrip:        &domain.VIPTrip{TripID: 1, PassengerID: 10},
		CompletedTrips: 7,
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cacheStore.SetTripDetail(context.Background(), 1, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The VIP repository is empty: only the cache can satisfy this read.
	result, err := svc.GetOne(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CompletedTrips != 7 {
		t.Errorf("completed trips = %d, want cached 7", result.CompletedTrips)
	}
	if result.Trip.Status != domain.TripStatusPending {
		t.Errorf("status = %s, want cached PENDING", result.Trip.Status)
	}
}

func TestGetTripOffers_Pagination(t *testing.T) {
	t.Parallel()

	svc, _, _, offerRepo, _ := newReadFixture()
	for i := int64(1); i <= 3; i++ {
		offerRepo.AddOffer(&domain.Offer{ID: i, TripID: 1, DriverID: 20 + i, Price: float64(50 + i)})
	}

	page, err := svc.GetTripOffers(context.Background(), 1, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.Offers) != 1 {
		t.Errorf("expected 1 offer on page 2, got %d", len(page.Offers))
	}
	if page.TotalCount != 3 {
		t.Errorf("total count = %d, want 3", page.TotalCount)
	}
	if page.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", page.TotalPages)
	}
}

func TestGetTripOffers_InvalidTripID(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newReadFixture()

	_, err := svc.GetTripOffers(context.Background(), 0, 1, 10)
	if !errors.Is(err, service.ErrInvalidTripID) {
		t.Errorf("expected ErrInvalidTripID, got %v", err)
	}
}
