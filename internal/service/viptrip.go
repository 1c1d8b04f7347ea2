package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"viptrip/internal/domain"
	"viptrip/internal/redis"
	"viptrip/internal/repository"
	"viptrip/internal/repository/postgres"
)

// vipFeature is stripped from a trip's feature set when the trip is rebooked
// as a regular request after a driver cancellation.
const vipFeature = "VIP"

// settlementLockTTL bounds how long a crashed settlement can keep a trip locked.
const settlementLockTTL = 30 * time.Second

// VIPTripService handles the VIP trip lifecycle: creation, both cancellation
// flows, completion settlement and the read paths.
type VIPTripService struct {
	db *sql.DB

	tripRepo    repository.TripRepository
	vipRepo     repository.VIPTripRepository
	userRepo    repository.UserRepository
	offerRepo   repository.OfferRepository
	vehicleRepo repository.VehicleRepository

	locks   redis.LockStoreInterface
	cache   redis.CacheStoreInterface
	arrival ArrivalValidator

	notificationService *NotificationService

	appSharePercent float64
}

// NewVIPTripService creates a new VIPTripService. appSharePercent is the
// platform's percentage cut of the trip price.
func NewVIPTripService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	vipRepo repository.VIPTripRepository,
	userRepo repository.UserRepository,
	offerRepo repository.OfferRepository,
	vehicleRepo repository.VehicleRepository,
	locks redis.LockStoreInterface,
	cache redis.CacheStoreInterface,
	arrival ArrivalValidator,
	notificationService *NotificationService,
	appSharePercent float64,
) *VIPTripService {
	return &VIPTripService{
		db:                  db,
		tripRepo:            tripRepo,
		vipRepo:             vipRepo,
		userRepo:            userRepo,
		offerRepo:           offerRepo,
		vehicleRepo:         vehicleRepo,
		locks:               locks,
		cache:               cache,
		arrival:             arrival,
		notificationService: notificationService,
		appSharePercent:     appSharePercent,
	}
}

// CreateVIPTripRequest contains the parameters for requesting a VIP trip.
type CreateVIPTripRequest struct {
	PassengerID            int64
	PickupLat              float64
	PickupLng              float64
	PickupDescription      string
	DestinationLat         float64
	DestinationLng         float64
	DestinationDescription string
	Gender                 string
	Features               []string
	StartDate              time.Time
	Distance               float64
}

// Create persists a new PENDING VIP trip and its detail record atomically and
// returns the trip with the passenger profile attached.
func (s *VIPTripService) Create(ctx context.Context, req CreateVIPTripRequest) (*repository.TripDetail, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	trip, err := createVIPTrip(ctx, postgres.NewTripRepositoryWithTx(tx), postgres.NewVIPTripRepositoryWithTx(tx), req)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	// TODO: notify matching drivers about the new trip request.

	return s.vipRepo.GetDetail(ctx, trip.ID)
}

// createVIPTrip writes the trip row and its VIP detail through the given
// repositories. Shared by Create and the rebooking step of DriverCancel.
func createVIPTrip(ctx context.Context, trips repository.TripRepository, vips repository.VIPTripRepository, req CreateVIPTripRequest) (*domain.Trip, error) {
	trip := &domain.Trip{
		Status:    domain.TripStatusPending,
		Type:      domain.TripTypeVIP,
		Gender:    req.Gender,
		Features:  req.Features,
		Distance:  req.Distance,
		StartDate: req.StartDate,
	}

	if err := trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	vip := &domain.VIPTrip{
		TripID:                 trip.ID,
		PassengerID:            req.PassengerID,
		PickupLat:              req.PickupLat,
		PickupLng:              req.PickupLng,
		PickupDescription:      req.PickupDescription,
		DestinationLat:         req.DestinationLat,
		DestinationLng:         req.DestinationLng,
		DestinationDescription: req.DestinationDescription,
	}

	if err := vips.Create(ctx, vip); err != nil {
		return nil, err
	}

	return trip, nil
}

func (s *VIPTripService) validateCreateRequest(req CreateVIPTripRequest) error {
	if req.PassengerID <= 0 {
		return ErrInvalidUserID
	}
	if req.StartDate.IsZero() {
		return ErrInvalidStartDate
	}
	if !validCoordinates(req.PickupLat, req.PickupLng) || !validCoordinates(req.DestinationLat, req.DestinationLng) {
		return ErrInvalidLocation
	}
	return nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// CancelTripData carries the reason and optional note of a cancellation.
type CancelTripData struct {
	Reason domain.CancelationReason
	Note   string
}

// CancellationResult reports who should be notified after a cancellation.
// Driver is set for passenger-initiated cancellations, Passenger for
// driver-initiated ones. Both are nil when the trip was simply deleted.
type CancellationResult struct {
	Type      domain.TripType
	Driver    *domain.NotificationInfo
	Passenger *domain.NotificationInfo
}

// Cancel handles a passenger-initiated cancellation. A trip with no driver
// assigned is hard-deleted with no ledger impact; otherwise the penalty,
// debt, discount and refund rules are settled in one transaction.
func (s *VIPTripService) Cancel(ctx context.Context, tripID, passengerID int64, data CancelTripData) (*CancellationResult, error) {
	if tripID <= 0 {
		return nil, ErrInvalidTripID
	}
	if passengerID <= 0 {
		return nil, ErrInvalidUserID
	}

	vip, err := s.vipRepo.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}
	if vip.PassengerID != passengerID {
		return nil, ErrTripNotFound
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}
	if !trip.Cancelable() {
		return nil, ErrTripNotCancelable
	}

	if trip.DriverID == 0 {
		// Nobody accepted the trip yet: drop it entirely, no ledger impact.
		if err := s.tripRepo.Delete(ctx, tripID); err != nil {
			return nil, err
		}
		s.invalidate(ctx, tripID)
		return nil, nil
	}

	release, err := s.lockTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txWalletRepo := postgres.NewWalletRepositoryWithTx(tx)

	// Re-read under the row lock: the pre-checks above ran unlocked.
	locked, err := txTripRepo.GetByIDForUpdate(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}
	if !locked.Cancelable() {
		return nil, ErrTripNotCancelable
	}

	passengerBalance, driverBalance, err := txWalletRepo.GetBalancesForUpdate(ctx, passengerID, locked.DriverID)
	if err != nil {
		return nil, err
	}

	havePenalty := cancellationPenaltyDue(time.Now(), locked.StartDate)

	if err = s.recordCancellation(ctx, tx, locked, passengerID, locked.DriverID, domain.CanceledByPassenger, data); err != nil {
		return nil, err
	}

	st := NewSettlement(tripID, passengerID, locked.DriverID, passengerBalance, driverBalance)
	if vip.PaymentMethod == domain.PaymentMethodCash && vip.UserDebt > 0 {
		st.CollectPassengerDebt(vip.UserDebt)
	}
	if havePenalty {
		st.ApplyPassengerPenalty()
	}
	if vip.AppShareDiscount > 0 {
		st.MarkDiscountUsed()
	}
	if vip.PaymentMethod.Prepaid() {
		st.RefundPassenger(refundAmount(locked.Price, vip.UserAppShare, vip.AppShareDiscount, vip.Discount))
	}

	if err = s.applySettlement(ctx, txWalletRepo, st); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, tripID)

	driver, err := s.userRepo.GetNotificationInfo(ctx, locked.DriverID)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripCancelled(ctx, tripID, domain.CanceledByPassenger, driver)
	}

	return &CancellationResult{Type: locked.Type, Driver: driver}, nil
}

// DriverCancel handles a driver-initiated cancellation. Unless the reason is
// "picked up by another driver", the driver pays the penalty, the passenger is
// compensated and the trip is automatically rebooked without its VIP feature.
func (s *VIPTripService) DriverCancel(ctx context.Context, tripID, driverID int64, data CancelTripData) (*CancellationResult, error) {
	if tripID <= 0 {
		return nil, ErrInvalidTripID
	}
	if driverID <= 0 {
		return nil, ErrInvalidUserID
	}

	vip, err := s.vipRepo.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}
	if trip.DriverID != driverID {
		return nil, ErrTripNotFound
	}

	release, err := s.lockTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txVIPRepo := postgres.NewVIPTripRepositoryWithTx(tx)
	txWalletRepo := postgres.NewWalletRepositoryWithTx(tx)

	locked, err := txTripRepo.GetByIDForUpdate(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}

	passengerBalance, driverBalance, err := txWalletRepo.GetBalancesForUpdate(ctx, vip.PassengerID, driverID)
	if err != nil {
		return nil, err
	}

	if err = s.recordCancellation(ctx, tx, locked, vip.PassengerID, driverID, domain.CanceledByDriver, data); err != nil {
		return nil, err
	}

	st := NewSettlement(tripID, vip.PassengerID, driverID, passengerBalance, driverBalance)
	if vip.PaymentMethod == domain.PaymentMethodCash && vip.UserDebt > 0 {
		st.CollectPassengerDebt(vip.UserDebt)
	}
	if data.Reason != domain.ReasonPickUpOthers {
		st.ApplyDriverPenalty()

		// The passenger did nothing wrong: put the same request back on the
		// market, minus the VIP feature.
		if _, err = createVIPTrip(ctx, txTripRepo, txVIPRepo, rebookRequest(locked, vip, time.Now())); err != nil {
			return nil, err
		}
	}
	if vip.AppShareDiscount > 0 {
		st.MarkDiscountUsed()
	}
	if vip.PaymentMethod.Prepaid() {
		st.RefundPassenger(refundAmount(locked.Price, vip.UserAppShare, vip.AppShareDiscount, vip.Discount))
	}

	if err = s.applySettlement(ctx, txWalletRepo, st); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, tripID)

	passenger, err := s.userRepo.GetNotificationInfo(ctx, vip.PassengerID)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripCancelled(ctx, tripID, domain.CanceledByDriver, passenger)
	}

	return &CancellationResult{Type: locked.Type, Passenger: passenger}, nil
}

// rebookRequest builds the replacement request for a driver-cancelled trip:
// same geo, gender and features (VIP stripped), rescheduled to the original
// start or now, whichever is later.
func rebookRequest(trip *domain.Trip, vip *domain.VIPTrip, now time.Time) CreateVIPTripRequest {
	features := make([]string, 0, len(trip.Features))
	for _, feature := range trip.Features {
		if feature != vipFeature {
			features = append(features, feature)
		}
	}

	start := trip.StartDate
	if now.After(start) {
		start = now
	}

	return CreateVIPTripRequest{
		PassengerID:            vip.PassengerID,
		PickupLat:              vip.PickupLat,
		PickupLng:              vip.PickupLng,
		PickupDescription:      vip.PickupDescription,
		DestinationLat:         vip.DestinationLat,
		DestinationLng:         vip.DestinationLng,
		DestinationDescription: vip.DestinationDescription,
		Gender:                 trip.Gender,
		Features:               features,
		StartDate:              start,
		Distance:               trip.Distance,
	}
}

// EndTripResult carries the two records a completed trip produces.
type EndTripResult struct {
	StatusInfo *TripStatusInfo
	Summary    *TripSummary
}

// EndTrip completes a trip: cash debt and app-share recovery from the driver,
// completion stamping with taxes, price credit, platform cut, recent-address
// write, and the status/summary payloads.
func (s *VIPTripService) EndTrip(ctx context.Context, driverID, tripID int64) (*EndTripResult, error) {
	if tripID <= 0 {
		return nil, ErrInvalidTripID
	}
	if driverID <= 0 {
		return nil, ErrInvalidUserID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}
	if trip.DriverID != driverID {
		return nil, ErrTripNotFound
	}

	vip, err := s.vipRepo.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}

	if trip.Status == domain.TripStatusCompleted {
		return nil, ErrTripAlreadyCompleted
	}

	if err := s.arrival.ValidateDriverAtDestination(ctx, driverID, vip.DestinationLat, vip.DestinationLng); err != nil {
		return nil, err
	}

	// Reporting inputs, read before the settlement transaction.
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	vehicleSerialNo, err := s.vehicleRepo.GetSerialNo(ctx, trip.VehicleID)
	if err != nil {
		return nil, err
	}
	passenger, err := s.userRepo.GetNotificationInfo(ctx, vip.PassengerID)
	if err != nil {
		return nil, err
	}

	release, err := s.lockTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txWalletRepo := postgres.NewWalletRepositoryWithTx(tx)
	txAddressRepo := postgres.NewRecentAddressRepositoryWithTx(tx)

	locked, err := txTripRepo.GetByIDForUpdate(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}
	if locked.Status == domain.TripStatusCompleted {
		return nil, ErrTripAlreadyCompleted
	}

	passengerBalance, driverBalance, err := txWalletRepo.GetBalancesForUpdate(ctx, vip.PassengerID, driverID)
	if err != nil {
		return nil, err
	}

	driverAppShare := locked.Price * s.appSharePercent / 100
	userAppShare := vip.UserAppShare - vip.AppShareDiscount

	st := NewSettlement(tripID, vip.PassengerID, driverID, passengerBalance, driverBalance)

	// On a cash trip the driver collected the full amount directly and must
	// surrender the platform's pieces of it first.
	if vip.PaymentMethod == domain.PaymentMethodCash {
		if vip.UserDebt > 0 {
			st.CollectDriverDebt(vip.UserDebt)
		}
		if userAppShare > 0 {
			st.CollectDriverAppShare(userAppShare)
		}
	}

	locked.Status = domain.TripStatusCompleted
	locked.DriverAppShare = driverAppShare
	locked.UserAppShare = userAppShare
	locked.UserDebt = vip.UserDebt
	locked.DriverTax = driverAppShare * taxRate
	locked.UserTax = userAppShare * taxRate
	locked.EndDate = time.Now()

	if err = txTripRepo.Complete(ctx, locked); err != nil {
		return nil, err
	}

	if vip.PaymentMethod.Prepaid() {
		st.CreditTripPrice(locked.Price)
	}
	if vip.PaymentMethod == domain.PaymentMethodCash && locked.Discount > 0 {
		st.CreditCashDiscount(locked.Discount)
	}
	st.ChargeAppShare(driverAppShare)

	if err = s.applySettlement(ctx, txWalletRepo, st); err != nil {
		return nil, err
	}

	if err = txAddressRepo.Create(ctx, &domain.RecentAddress{
		UserID:      vip.PassengerID,
		Alias:       vip.DestinationDescription,
		Description: vip.DestinationDescription,
		Lat:         vip.DestinationLat,
		Lng:         vip.DestinationLng,
	}); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, tripID)

	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripCompleted(ctx, tripID, locked.Price, passenger)
	}

	return &EndTripResult{
		StatusInfo: &TripStatusInfo{
			ID:       locked.ID,
			Status:   locked.Status,
			DriverID: driverID,
			Users:    []domain.NotificationInfo{*passenger},
		},
		Summary: buildTripSummary(locked, vip, vehicleSerialNo, driver.NationalID),
	}, nil
}

// TripDetailResult is the trip detail read payload.
type TripDetailResult struct {
	Trip           *domain.Trip             `json:"trip"`
	VIPTrip        *domain.VIPTrip          `json:"vip_trip"`
	Passenger      *domain.PassengerProfile `json:"passenger"`
	CompletedTrips int                      `json:"completed_trips"`
}

// GetOne retrieves the VIP trip with its trip row, the passenger profile and
// the passenger's lifetime completed-trip count.
func (s *VIPTripService) GetOne(ctx context.Context, tripID int64) (*TripDetailResult, error) {
	if tripID <= 0 {
		return nil, ErrInvalidTripID
	}

	if s.cache != nil {
		if payload, ok, err := s.cache.GetTripDetail(ctx, tripID); err == nil && ok {
			var cached TripDetailResult
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	detail, err := s.vipRepo.GetDetail(ctx, tripID)
	if err != nil {
		return nil, notFoundAsTripError(err)
	}

	count, err := s.userRepo.CountCompletedTrips(ctx, detail.VIPTrip.PassengerID)
	if err != nil {
		return nil, err
	}

	result := &TripDetailResult{
		Trip:           detail.Trip,
		VIPTrip:        detail.VIPTrip,
		Passenger:      detail.Passenger,
		CompletedTrips: count,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			_ = s.cache.SetTripDetail(ctx, tripID, payload)
		}
	}

	return result, nil
}

// GetTripOffers retrieves one page of offers for a trip.
func (s *VIPTripService) GetTripOffers(ctx context.Context, tripID int64, page, limit int) (*domain.OfferPage, error) {
	if tripID <= 0 {
		return nil, ErrInvalidTripID
	}
	return s.offerRepo.ListByTrip(ctx, tripID, page, limit)
}

// recordCancellation transitions the trip and writes its cancellation record.
// A "picked up by another driver" cancellation parks the trip ON_HOLD so it
// can be re-created instead of terminally cancelling it.
func (s *VIPTripService) recordCancellation(ctx context.Context, tx *sql.Tx, trip *domain.Trip, passengerID, driverID int64, by domain.CanceledBy, data CancelTripData) error {
	status := domain.TripStatusCancelled
	if data.Reason == domain.ReasonPickUpOthers {
		status = domain.TripStatusOnHold
	}

	if err := postgres.NewTripRepositoryWithTx(tx).SetStatus(ctx, trip.ID, status); err != nil {
		return err
	}
	trip.Status = status

	return postgres.NewCancelationRepositoryWithTx(tx).Create(ctx, &domain.Cancelation{
		TripID:      trip.ID,
		CanceledBy:  by,
		Reason:      data.Reason,
		Note:        data.Note,
		PassengerID: passengerID,
		DriverID:    driverID,
	})
}

// applySettlement writes the accumulated ledger entries and counter bumps.
func (s *VIPTripService) applySettlement(ctx context.Context, wallets repository.WalletRepository, st *Settlement) error {
	if err := wallets.ApplyEntries(ctx, st.Entries()); err != nil {
		return err
	}

	for i := 0; i < st.PassengerCancelIncrement; i++ {
		if err := wallets.IncrementCancelCount(ctx, st.passengerID, domain.AccountPassenger); err != nil {
			return err
		}
	}
	for i := 0; i < st.DriverCancelIncrement; i++ {
		if err := wallets.IncrementCancelCount(ctx, st.driverID, domain.AccountDriver); err != nil {
			return err
		}
	}
	for i := 0; i < st.DiscountUsageIncrement; i++ {
		if err := wallets.IncrementDiscountUsage(ctx, st.passengerID); err != nil {
			return err
		}
	}

	return nil
}

// lockTrip takes the per-trip settlement lock and returns its release func.
func (s *VIPTripService) lockTrip(ctx context.Context, tripID int64) (func(), error) {
	ok, err := s.locks.AcquireTripLock(ctx, tripID, settlementLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSettlementInProgress
	}
	return func() {
		_ = s.locks.ReleaseTripLock(ctx, tripID)
	}, nil
}

func (s *VIPTripService) invalidate(ctx context.Context, tripID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateTrip(ctx, tripID)
	}
}

func notFoundAsTripError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTripNotFound
	}
	return err
}
