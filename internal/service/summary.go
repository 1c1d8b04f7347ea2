package service

import (
	"math"
	"time"

	"viptrip/internal/domain"
)

// ksaZone is the reporting timezone required by the transport regulator.
// Saudi Arabia has no DST, so a fixed UTC+3 zone is exact.
var ksaZone = time.FixedZone("AST", 3*60*60)

// defaultCustomerRating is reported until per-trip ratings are collected.
const defaultCustomerRating = 5

// TripStatusInfo is the payload a caller needs to notify the passenger about
// the trip's new status.
type TripStatusInfo struct {
	ID       int64                     `json:"id"`
	Status   domain.TripStatus         `json:"status"`
	DriverID int64                     `json:"driver_id"`
	Users    []domain.NotificationInfo `json:"users"`
}

// TripSummary is the regulatory reporting record emitted on trip completion.
type TripSummary struct {
	SequenceNumber               string  `json:"sequenceNumber"`
	TripID                       int64   `json:"tripId"`
	DriverID                     string  `json:"driverId"`
	StartedWhen                  string  `json:"startedWhen"`
	PickupTimestamp              string  `json:"pickupTimestamp"`
	DropoffTimestamp             string  `json:"dropoffTimestamp"`
	DistanceInMeters             float64 `json:"distanceInMeters"`
	DurationInSeconds            float64 `json:"durationInSeconds"`
	CustomerRating               int     `json:"customerRating"`
	CustomerWaitingTimeInSeconds int     `json:"customerWaitingTimeInSeconds"`
	OriginLatitude               float64 `json:"originLatitude"`
	OriginLongitude              float64 `json:"originLongitude"`
	DestinationLatitude          float64 `json:"destinationLatitude"`
	DestinationLongitude         float64 `json:"destinationLongitude"`
	TripCost                     float64 `json:"tripCost"`
}

// buildTripSummary assembles the reporting record for a completed trip.
// sequenceNumber is the vehicle's registration serial; driverID the driver's
// official (national) ID. Pickup and dropoff timestamps are localized to KSA.
func buildTripSummary(trip *domain.Trip, vip *domain.VIPTrip, vehicleSerialNo, driverNationalID string) *TripSummary {
	duration := trip.EndDate.Sub(trip.StartDate).Seconds()
	waiting := int(math.Ceil(math.Abs(trip.StartDate.Sub(trip.PickupTime).Seconds())))

	return &TripSummary{
		SequenceNumber:               vehicleSerialNo,
		TripID:                       trip.ID,
		DriverID:                     driverNationalID,
		StartedWhen:                  trip.StartDate.UTC().Format(time.RFC3339),
		PickupTimestamp:              formatKSA(trip.PickupTime),
		DropoffTimestamp:             formatKSA(trip.EndDate),
		DistanceInMeters:             trip.Distance,
		DurationInSeconds:            duration,
		CustomerRating:               defaultCustomerRating,
		CustomerWaitingTimeInSeconds: waiting,
		OriginLatitude:               vip.PickupLat,
		OriginLongitude:              vip.PickupLng,
		DestinationLatitude:          vip.DestinationLat,
		DestinationLongitude:         vip.DestinationLng,
		TripCost:                     trip.Price,
	}
}

func formatKSA(t time.Time) string {
	return t.In(ksaZone).Format(time.RFC3339)
}
