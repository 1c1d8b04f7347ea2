package service

import "errors"

var (
	// ErrTripNotFound is returned when a trip does not exist or is not owned
	// by the requesting party.
	ErrTripNotFound = errors.New("trip not found")

	// ErrTripNotCancelable is returned when the trip's status forbids
	// passenger cancellation.
	ErrTripNotCancelable = errors.New("trip cannot be cancelled in current state")

	// ErrTripAlreadyCompleted is returned when trying to end an already
	// completed trip.
	ErrTripAlreadyCompleted = errors.New("trip already ended")

	// ErrSettlementInProgress is returned when another settlement already
	// holds the trip's lock.
	ErrSettlementInProgress = errors.New("trip settlement already in progress")

	// ErrDriverNotAtDestination is returned when the driver's last reported
	// location is too far from the trip destination to end the trip.
	ErrDriverNotAtDestination = errors.New("driver is not at trip destination")

	// ErrDriverLocationUnknown is returned when the driver has never reported
	// a location.
	ErrDriverLocationUnknown = errors.New("driver location unknown")

	// ErrInvalidTripID is returned when the trip ID is missing or malformed.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidUserID is returned when a passenger or driver ID is missing.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidStartDate is returned when a trip is requested without a
	// start date.
	ErrInvalidStartDate = errors.New("invalid start date")
)
