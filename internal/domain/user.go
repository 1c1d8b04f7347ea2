package domain

import "time"

// User represents a platform account. The same row serves as passenger and as
// driver; each role has its own wallet balance and cancellation counter.
type User struct {
	ID                int64
	UUID              string
	Name              string
	Avatar            string
	NationalID        string
	PreferredLanguage string
	Hobbies           []string
	FCMTokens         []string

	PassengerRate float64
	DriverRate    float64

	UserWalletBalance   float64
	DriverWalletBalance float64

	PassengerCancelCount  int
	DriverCancelCount     int
	DiscountAppShareCount int

	CreatedAt time.Time
}

// NotificationInfo carries the fields a caller needs to push a message to a
// user through an external delivery channel.
type NotificationInfo struct {
	UUID              string   `json:"uuid"`
	FCMTokens         []string `json:"fcm_tokens"`
	PreferredLanguage string   `json:"preferred_language"`
}

// PassengerProfile is the passenger-facing subset returned with trip detail.
type PassengerProfile struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Avatar        string   `json:"avatar"`
	PassengerRate float64  `json:"passenger_rate"`
	Hobbies       []string `json:"hobbies"`
}
