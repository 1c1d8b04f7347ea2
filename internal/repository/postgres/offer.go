package postgres

import (
	"context"
	"database/sql"

	"viptrip/internal/domain"
	"viptrip/internal/repository"
)

// OfferRepository is a PostgreSQL implementation of repository.OfferRepository.
type OfferRepository struct {
	q Querier
}

// NewOfferRepository creates a new PostgreSQL offer repository.
func NewOfferRepository(db *sql.DB) *OfferRepository {
	return &OfferRepository{q: db}
}

// ListByTrip retrieves one page of offers for a trip, joined with the driver
// profile and the driver's first non-deleted vehicle with its localized
// color, class, type and name.
func (r *OfferRepository) ListByTrip(ctx context.Context, tripID int64, page, limit int) (*domain.OfferPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int
	countQuery := `SELECT COUNT(*) FROM offers WHERE trip_id = $1`
	if err := r.q.QueryRowContext(ctx, countQuery, tripID).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT
			o.id, o.trip_id, o.driver_id, o.price, o.created_at,
			u.name, COALESCE(u.avatar, ''), u.driver_rate,
			veh.id, veh.serial_no, veh.plate_alphabet, veh.plate_alphabet_ar,
			veh.plate_number, veh.seats_no, veh.production_year,
			veh.color_ar, veh.color_en,
			veh.class_ar, veh.class_en,
			veh.type_ar, veh.type_en,
			veh.name_ar, veh.name_en
		FROM offers o
		JOIN users u ON u.id = o.driver_id
		LEFT JOIN LATERAL (
			SELECT
				ve.id, ve.serial_no, ve.plate_alphabet, ve.plate_alphabet_ar,
				ve.plate_number, ve.seats_no, ve.production_year,
				vc.ar_name AS color_ar, vc.en_name AS color_en,
				vcl.ar_name AS class_ar, vcl.en_name AS class_en,
				vt.ar_name AS type_ar, vt.en_name AS type_en,
				vn.ar_name AS name_ar, vn.en_name AS name_en
			FROM vehicles ve
			JOIN vehicle_colors vc ON vc.id = ve.color_id
			JOIN vehicle_classes vcl ON vcl.id = ve.class_id
			JOIN vehicle_types vt ON vt.id = ve.type_id
			JOIN vehicle_names vn ON vn.id = ve.name_id
			WHERE ve.driver_id = o.driver_id AND ve.deleted_at IS NULL
			ORDER BY ve.id
			LIMIT 1
		) veh ON true
		WHERE o.trip_id = $1
		ORDER BY o.created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.QueryContext(ctx, query, tripID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*domain.Offer
	for rows.Next() {
		var offer domain.Offer
		var vehID sql.NullInt64
		var serialNo, plateAlphabet, plateAlphabetAr, plateNumber sql.NullString
		var seatsNo, productionYear sql.NullInt64
		var colorAr, colorEn, classAr, classEn, typeAr, typeEn, nameAr, nameEn sql.NullString

		if err := rows.Scan(
			&offer.ID,
			&offer.TripID,
			&offer.DriverID,
			&offer.Price,
			&offer.CreatedAt,
			&offer.DriverName,
			&offer.Avatar,
			&offer.DriverRate,
			&vehID,
			&serialNo,
			&plateAlphabet,
			&plateAlphabetAr,
			&plateNumber,
			&seatsNo,
			&productionYear,
			&colorAr, &colorEn,
			&classAr, &classEn,
			&typeAr, &typeEn,
			&nameAr, &nameEn,
		); err != nil {
			return nil, err
		}

		if vehID.Valid {
			offer.Vehicle = &domain.OfferVehicle{
				ID:              vehID.Int64,
				SerialNo:        serialNo.String,
				PlateAlphabet:   plateAlphabet.String,
				PlateAlphabetAr: plateAlphabetAr.String,
				PlateNumber:     plateNumber.String,
				SeatsNo:         int(seatsNo.Int64),
				ProductionYear:  int(productionYear.Int64),
				Color:           domain.LocalizedName{ArName: colorAr.String, EnName: colorEn.String},
				Class:           domain.LocalizedName{ArName: classAr.String, EnName: classEn.String},
				Type:            domain.LocalizedName{ArName: typeAr.String, EnName: typeEn.String},
				Name:            domain.LocalizedName{ArName: nameAr.String, EnName: nameEn.String},
			}
		}

		offers = append(offers, &offer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &domain.OfferPage{
		Offers:     offers,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// Ensure OfferRepository implements repository.OfferRepository.
var _ repository.OfferRepository = (*OfferRepository)(nil)
