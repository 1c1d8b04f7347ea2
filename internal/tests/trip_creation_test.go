package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"viptrip/internal/service"
)

// ──────────────────────────────────────────────
// TRIP CREATION VALIDATION
// ──────────────────────────────────────────────

func validCreateRequest() service.CreateVIPTripRequest {
	return service.CreateVIPTripRequest{
		PassengerID:            10,
		PickupLat:              24.7136,
		PickupLng:              46.6753,
		PickupDescription:      "home",
		DestinationLat:         24.7743,
		DestinationLng:         46.7386,
		DestinationDescription: "airport",
		Features:               []string{"VIP"},
		StartDate:              time.Now().Add(2 * time.Hour),
		Distance:               9000,
	}
}

func TestCreateTrip_RequiresPassenger(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newCancelFixture()

	req := validCreateRequest()
	req.PassengerID = 0

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, service.ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestCreateTrip_RequiresStartDate(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newCancelFixture()

	req := validCreateRequest()
	req.StartDate = time.Time{}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, service.ErrInvalidStartDate) {
		t.Errorf("expected ErrInvalidStartDate, got %v", err)
	}
}

func TestCreateTrip_RejectsBadCoordinates(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := newCancelFixture()
	ctx := context.Background()

	req := validCreateRequest()
	req.PickupLat = 95
	if _, err := svc.Create(ctx, req); !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("pickup: expected ErrInvalidLocation, got %v", err)
	}

	req = validCreateRequest()
	req.DestinationLng = -200
	if _, err := svc.Create(ctx, req); !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("destination: expected ErrInvalidLocation, got %v", err)
	}
}
