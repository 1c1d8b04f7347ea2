package tests

import (
	"context"
	"errors"
	"testing"

	"viptrip/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER LOCATION & ARRIVAL VALIDATION
// ──────────────────────────────────────────────

func TestUpdateLocation_InvalidCoordinatesRejected(t *testing.T) {
	t.Parallel()

	store := NewMockLocationStore()
	svc := service.NewLocationService(store, 200)
	ctx := context.Background()

	cases := []struct{ lat, lng float64 }{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	for _, tc := range cases {
		if err := svc.UpdateLocation(ctx, 20, tc.lat, tc.lng); !errors.Is(err, service.ErrInvalidLocation) {
			t.Errorf("(%v,%v): expected ErrInvalidLocation, got %v", tc.lat, tc.lng, err)
		}
	}
}

func TestUpdateLocation_StoresPosition(t *testing.T) {
	t.Parallel()

	store := NewMockLocationStore()
	svc := service.NewLocationService(store, 200)
	ctx := context.Background()

	if err := svc.UpdateLocation(ctx, 20, 24.7136, 46.6753); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, err := store.GetLocation(ctx, "20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil {
		t.Fatal("location not stored")
	}
	if loc.Lat != 24.7136 || loc.Lng != 46.6753 {
		t.Errorf("stored location = (%v,%v)", loc.Lat, loc.Lng)
	}
}

func TestValidateDriverAtDestination_UnknownLocation(t *testing.T) {
	t.Parallel()

	store := NewMockLocationStore()
	svc := service.NewLocationService(store, 200)

	err := svc.ValidateDriverAtDestination(context.Background(), 20, 24.7136, 46.6753)
	if !errors.Is(err, service.ErrDriverLocationUnknown) {
		t.Errorf("expected ErrDriverLocationUnknown, got %v", err)
	}
}

func TestValidateDriverAtDestination_TooFar(t *testing.T) {
	t.Parallel()

	store := NewMockLocationStore()
	svc := service.NewLocationService(store, 200)
	ctx := context.Background()

	// Driver is roughly 9km away from the destination.
	if err := svc.UpdateLocation(ctx, 20, 24.7136, 46.6753); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := svc.ValidateDriverAtDestination(ctx, 20, 24.7743, 46.7386)
	if !errors.Is(err, service.ErrDriverNotAtDestination) {
		t.Errorf("expected ErrDriverNotAtDestination, got %v", err)
	}
}

func TestValidateDriverAtDestination_WithinRadius(t *testing.T) {
	t.Parallel()

	store := NewMockLocationStore()
	svc := service.NewLocationService(store, 200)
	ctx := context.Background()

	// ~111m north of the destination.
	if err := svc.UpdateLocation(ctx, 20, 24.7146, 46.6753); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ValidateDriverAtDestination(ctx, 20, 24.7136, 46.6753); err != nil {
		t.Errorf("expected success within radius, got %v", err)
	}
}
