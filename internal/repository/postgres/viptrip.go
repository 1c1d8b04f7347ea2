package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// VIPTripRepository is a PostgreSQL implementation of repository.VIPTripRepository.
type VIPTripRepository struct {
	q Querier
}

// NewVIPTripRepository creates a new PostgreSQL VIP trip repository.
func NewVIPTripRepository(db *sql.DB) *VIPTripRepository {
	return &VIPTripRepository{q: db}
}

// NewVIPTripRepositoryWithTx creates a VIP trip repository using a transaction.
func NewVIPTripRepositoryWithTx(tx *sql.Tx) *VIPTripRepository {
	return &VIPTripRepository{q: tx}
}

// Create persists the VIP detail record for a trip.
func (r *VIPTripRepository) Create(ctx context.Context, vip *domain.VIPTrip) error {
	query := `
		INSERT INTO vip_trips (
			trip_id, passenger_id, payment_method,
			pickup_location_lat, pickup_location_lng, pickup_description,
			destination_location_lat, destination_location_lng, destination_description,
			user_debt, user_app_share, app_share_discount, discount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.q.ExecContext(ctx, query,
		vip.TripID,
		vip.PassengerID,
		vip.PaymentMethod,
		vip.PickupLat,
		vip.PickupLng,
		vip.PickupDescription,
		vip.DestinationLat,
		vip.DestinationLng,
		vip.DestinationDescription,
		vip.UserDebt,
		vip.UserAppShare,
		vip.AppShareDiscount,
		vip.Discount,
	)
	return err
}

const vipTripColumns = `
	trip_id, passenger_id, payment_method,
	pickup_location_lat, pickup_location_lng, pickup_description,
	destination_location_lat, destination_location_lng, destination_description,
	user_debt, user_app_share, app_share_discount, discount
`

// GetByTripID retrieves the VIP detail of a trip.
func (r *VIPTripRepository) GetByTripID(ctx context.Context, tripID int64) (*domain.VIPTrip, error) {
	query := `SELECT ` + vipTripColumns + ` FROM vip_trips WHERE trip_id = $1`

	var vip domain.VIPTrip
	err := r.q.QueryRowContext(ctx, query, tripID).Scan(
		&vip.TripID,
		&vip.PassengerID,
		&vip.PaymentMethod,
		&vip.PickupLat,
		&vip.PickupLng,
		&vip.PickupDescription,
		&vip.DestinationLat,
		&vip.DestinationLng,
		&vip.DestinationDescription,
		&vip.UserDebt,
		&vip.UserAppShare,
		&vip.AppShareDiscount,
		&vip.Discount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &vip, nil
}

// GetDetail retrieves the VIP trip joined with its trip row and the
// passenger's profile.
func (r *VIPTripRepository) GetDetail(ctx context.Context, tripID int64) (*repository.TripDetail, error) {
	query := `
		SELECT
			v.trip_id, v.passenger_id, v.payment_method,
			v.pickup_location_lat, v.pickup_location_lng, v.pickup_description,
			v.destination_location_lat, v.destination_location_lng, v.destination_description,
			v.user_debt, v.user_app_share, v.app_share_discount, v.discount,
			t.id, t.status, t.type, t.gender, t.features,
			COALESCE(t.driver_id, 0), COALESCE(t.vehicle_id, 0),
			t.price, t.distance, t.discount, t.start_date, t.end_date, t.pickup_time,
			t.driver_app_share, t.user_app_share, t.user_debt, t.driver_tax, t.user_tax, t.created_at,
			u.id, u.name, COALESCE(u.avatar, ''), u.passenger_rate, u.hobbies
		FROM vip_trips v
		JOIN trips t ON t.id = v.trip_id
		JOIN users u ON u.id = v.passenger_id
		WHERE v.trip_id = $1
	`

	var vip domain.VIPTrip
	var trip domain.Trip
	var passenger domain.PassengerProfile
	var endDate, pickupTime sql.NullTime

	err := r.q.QueryRowContext(ctx, query, tripID).Scan(
		&vip.TripID,
		&vip.PassengerID,
		&vip.PaymentMethod,
		&vip.PickupLat,
		&vip.PickupLng,
		&vip.PickupDescription,
		&vip.DestinationLat,
		&vip.DestinationLng,
		&vip.DestinationDescription,
		&vip.UserDebt,
		&vip.UserAppShare,
		&vip.AppShareDiscount,
		&vip.Discount,
		&trip.ID,
		&trip.Status,
		&trip.Type,
		&trip.Gender,
		pq.Array(&trip.Features),
		&trip.DriverID,
		&trip.VehicleID,
		&trip.Price,
		&trip.Distance,
		&trip.Discount,
		&trip.StartDate,
		&endDate,
		&pickupTime,
		&trip.DriverAppShare,
		&trip.UserAppShare,
		&trip.UserDebt,
		&trip.DriverTax,
		&trip.UserTax,
		&trip.CreatedAt,
		&passenger.ID,
		&passenger.Name,
		&passenger.Avatar,
		&passenger.PassengerRate,
		pq.Array(&passenger.Hobbies),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if endDate.Valid {
		trip.EndDate = endDate.Time
	}
	if pickupTime.Valid {
		trip.PickupTime = pickupTime.Time
	}

	return &repository.TripDetail{VIPTrip: &vip, Trip: &trip, Passenger: &passenger}, nil
}

// Ensure VIPTripRepository implements repository.VIPTripRepository.
var _ repository.VIPTripRepository = (*VIPTripRepository)(nil)
