package domain

import "time"

// LocalizedName holds the Arabic and English names of a vehicle attribute.
type LocalizedName struct {
	ArName string `json:"ar_name"`
	EnName string `json:"en_name"`
}

// OfferVehicle is the driver's active (non-deleted) vehicle as shown with an offer.
type OfferVehicle struct {
	ID              int64         `json:"id"`
	SerialNo        string        `json:"serial_no"`
	PlateAlphabet   string        `json:"plate_alphabet"`
	PlateAlphabetAr string        `json:"plate_alphabet_ar"`
	PlateNumber     string        `json:"plate_number"`
	SeatsNo         int           `json:"seats_no"`
	ProductionYear  int           `json:"production_year"`
	Color           LocalizedName `json:"color"`
	Class           LocalizedName `json:"class"`
	Type            LocalizedName `json:"type"`
	Name            LocalizedName `json:"name"`
}

// Offer is a driver's bid on a trip, joined with the driver profile and vehicle.
type Offer struct {
	ID         int64         `json:"id"`
	TripID     int64         `json:"trip_id"`
	DriverID   int64         `json:"driver_id"`
	Price      float64       `json:"price"`
	DriverName string        `json:"driver_name"`
	Avatar     string        `json:"avatar"`
	DriverRate float64       `json:"driver_rate"`
	Vehicle    *OfferVehicle `json:"vehicle,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// OfferPage is one page of offers for a trip.
type OfferPage struct {
	Offers     []*Offer `json:"offers"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalCount int      `json:"total_count"`
	TotalPages int      `json:"total_pages"`
}
