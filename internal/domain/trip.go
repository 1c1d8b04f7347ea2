package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusPending    TripStatus = "PENDING"
	TripStatusOnHold     TripStatus = "ON_HOLD"
	TripStatusInProgress TripStatus = "INPROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// TripType distinguishes premium single-passenger trips from shared basic trips.
type TripType string

const (
	TripTypeVIP   TripType = "VIPTRIP"
	TripTypeBasic TripType = "BASICTRIP"
)

// CanceledBy identifies which party cancelled a trip.
type CanceledBy string

const (
	CanceledByPassenger CanceledBy = "PASSENGER"
	CanceledByDriver    CanceledBy = "DRIVER"
)

// CancelationReason is the rider- or driver-supplied reason for a cancellation.
// ReasonPickUpOthers is distinguished: a driver who cancels because the
// passenger was already picked up by another driver pays no penalty, and the
// trip is put ON_HOLD instead of CANCELLED.
type CancelationReason string

const (
	ReasonPickUpOthers CancelationReason = "PICK_UP_OTHERS"
)

// Trip represents a trip row. A VIP trip always has exactly one VIPTrip
// detail record, created together with it.
type Trip struct {
	ID         int64
	Status     TripStatus
	Type       TripType
	Gender     string
	Features   []string
	DriverID   int64 // 0 until a driver accepts an offer
	VehicleID  int64
	Price      float64
	Distance   float64
	Discount   float64
	StartDate  time.Time
	EndDate    time.Time
	PickupTime time.Time

	// Stamped on completion.
	DriverAppShare float64
	UserAppShare   float64
	UserDebt       float64
	DriverTax      float64
	UserTax        float64

	CreatedAt time.Time
}

// Cancelable reports whether a passenger may still cancel the trip.
func (t *Trip) Cancelable() bool {
	switch t.Status {
	case TripStatusCancelled, TripStatusCompleted, TripStatusInProgress:
		return false
	}
	return true
}

// Cancelation is the immutable record of who cancelled a trip and why.
// Exactly one exists per cancelled trip.
type Cancelation struct {
	ID          int64
	TripID      int64
	CanceledBy  CanceledBy
	Reason      CancelationReason
	Note        string
	PassengerID int64
	DriverID    int64
	CreatedAt   time.Time
}
