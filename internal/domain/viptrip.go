package domain

// PaymentMethod represents how the passenger pays for a trip.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodWallet PaymentMethod = "WALLET"
	PaymentMethodCard   PaymentMethod = "CARD"
)

// Prepaid reports whether the amount was charged to the passenger up front
// (and must therefore be refunded on cancellation).
func (m PaymentMethod) Prepaid() bool {
	return m == PaymentMethodWallet || m == PaymentMethodCard
}

// VIPTrip is the detail record of a VIP trip, 1:1 with its Trip row.
// UserDebt is the cash amount the platform advanced to the driver and must
// recover from the passenger; UserAppShare and AppShareDiscount accumulate
// during the trip and drive completion-time tax arithmetic.
type VIPTrip struct {
	TripID      int64
	PassengerID int64

	PaymentMethod PaymentMethod

	PickupLat              float64
	PickupLng              float64
	PickupDescription      string
	DestinationLat         float64
	DestinationLng         float64
	DestinationDescription string

	UserDebt         float64
	UserAppShare     float64
	AppShareDiscount float64
	Discount         float64
}
