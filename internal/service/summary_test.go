package service

import (
	"testing"
	"time"

	"viptrip/internal/domain"
)

func TestBuildTripSummary(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		ID:         42,
		Price:      120,
		Distance:   8500,
		StartDate:  start,
		EndDate:    start.Add(25 * time.Minute),
		PickupTime: start.Add(-90 * time.Second),
	}
	vip := &domain.VIPTrip{
		PickupLat:      24.7136,
		PickupLng:      46.6753,
		DestinationLat: 24.7743,
		DestinationLng: 46.7386,
	}

	summary := buildTripSummary(trip, vip, "SER-001", "1098765432")

	if summary.SequenceNumber != "SER-001" {
		t.Errorf("sequence number = %s, want SER-001", summary.SequenceNumber)
	}
	if summary.DriverID != "1098765432" {
		t.Errorf("driver id = %s, want the national id", summary.DriverID)
	}
	if summary.TripID != 42 {
		t.Errorf("trip id = %d, want 42", summary.TripID)
	}
	if summary.DurationInSeconds != 1500 {
		t.Errorf("duration = %v, want 1500", summary.DurationInSeconds)
	}
	if summary.CustomerWaitingTimeInSeconds != 90 {
		t.Errorf("waiting time = %d, want 90", summary.CustomerWaitingTimeInSeconds)
	}
	if summary.TripCost != 120 {
		t.Errorf("trip cost = %v, want 120", summary.TripCost)
	}
	if summary.CustomerRating != defaultCustomerRating {
		t.Errorf("rating = %d, want %d", summary.CustomerRating, defaultCustomerRating)
	}
	if summary.StartedWhen != "2026-03-01T09:00:00Z" {
		t.Errorf("started when = %s", summary.StartedWhen)
	}

	// Pickup/dropoff are reported in KSA local time (UTC+3).
	if summary.PickupTimestamp != "2026-03-01T11:58:30+03:00" {
		t.Errorf("pickup timestamp = %s", summary.PickupTimestamp)
	}
	if summary.DropoffTimestamp != "2026-03-01T12:25:00+03:00" {
		t.Errorf("dropoff timestamp = %s", summary.DropoffTimestamp)
	}
}

func TestBuildTripSummary_WaitingTimeIsAbsolute(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		StartDate:  start,
		EndDate:    start.Add(time.Minute),
		PickupTime: start.Add(30 * time.Second), // pickup recorded after start
	}

	summary := buildTripSummary(trip, &domain.VIPTrip{}, "", "")
	if summary.CustomerWaitingTimeInSeconds != 30 {
		t.Errorf("waiting time = %d, want 30", summary.CustomerWaitingTimeInSeconds)
	}
}

func TestRebookRequest_StripsVIPFeature(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		Gender:    "FEMALE",
		Features:  []string{"VIP", "AC", "WIFI"},
		Distance:  4000,
		StartDate: now.Add(time.Hour),
	}
	vip := &domain.VIPTrip{
		PassengerID:            5,
		PickupLat:              1,
		PickupLng:              2,
		PickupDescription:      "home",
		DestinationLat:         3,
		DestinationLng:         4,
		DestinationDescription: "work",
	}

	req := rebookRequest(trip, vip, now)

	if len(req.Features) != 2 || req.Features[0] != "AC" || req.Features[1] != "WIFI" {
		t.Errorf("features = %v, want [AC WIFI]", req.Features)
	}
	if req.PassengerID != 5 {
		t.Errorf("passenger id = %d, want 5", req.PassengerID)
	}
	if req.Gender != "FEMALE" {
		t.Errorf("gender = %s, want FEMALE", req.Gender)
	}
	if !req.StartDate.Equal(trip.StartDate) {
		t.Errorf("start date = %v, want original %v", req.StartDate, trip.StartDate)
	}
	if req.PickupDescription != "home" || req.DestinationDescription != "work" {
		t.Errorf("descriptions = %q/%q", req.PickupDescription, req.DestinationDescription)
	}
}

func TestRebookRequest_PastStartMovesToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		Features:  []string{"VIP"},
		StartDate: now.Add(-time.Hour),
	}

	req := rebookRequest(trip, &domain.VIPTrip{}, now)

	if !req.StartDate.Equal(now) {
		t.Errorf("start date = %v, want now %v", req.StartDate, now)
	}
	if len(req.Features) != 0 {
		t.Errorf("features = %v, want empty", req.Features)
	}
}
