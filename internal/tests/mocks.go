package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"viptrip/internal/domain"
	"viptrip/internal/redis"
	"viptrip/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu     sync.RWMutex
	trips  map[int64]*domain.Trip
	nextID int64

	// Counters for verification
	CreateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	DeleteError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{trips: make(map[int64]*domain.Trip)}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	trip.ID = m.nextID
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Trip, error) {
	return m.GetByID(ctx, id)
}

func (m *MockTripRepository) SetStatus(ctx context.Context, id int64, status domain.TripStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	trip.Status = status
	return nil
}

func (m *MockTripRepository) Complete(ctx context.Context, trip *domain.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.trips[trip.ID]
	if !ok {
		return repository.ErrNotFound
	}
	*stored = *trip
	return nil
}

func (m *MockTripRepository) Delete(ctx context.Context, id int64) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

// CountTrips returns the number of stored trips for test assertions.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id int64) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// ──────────────────────────────────────────────
// MOCK VIP TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockVIPTripRepository is a mock implementation of VIPTripRepository.
type MockVIPTripRepository struct {
	mu   sync.RWMutex
	vips map[int64]*domain.VIPTrip

	// Passengers keyed by ID, used to assemble GetDetail results.
	passengers map[int64]*domain.PassengerProfile

	// Error injection
	CreateError error
}

// NewMockVIPTripRepository creates a new mock VIP trip repository.
func NewMockVIPTripRepository() *MockVIPTripRepository {
	return &MockVIPTripRepository{
		vips:       make(map[int64]*domain.VIPTrip),
		passengers: make(map[int64]*domain.PassengerProfile),
	}
}

// AddVIPTrip adds a VIP detail record to the mock repository.
func (m *MockVIPTripRepository) AddVIPTrip(vip *domain.VIPTrip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vips[vip.TripID] = vip
}

// AddPassenger registers a passenger profile for GetDetail.
func (m *MockVIPTripRepository) AddPassenger(p *domain.PassengerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passengers[p.ID] = p
}

func (m *MockVIPTripRepository) Create(ctx context.Context, vip *domain.VIPTrip) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vips[vip.TripID] = vip
	return nil
}

func (m *MockVIPTripRepository) GetByTripID(ctx context.Context, tripID int64) (*domain.VIPTrip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vip, ok := m.vips[tripID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vip
	return &copy, nil
}

func (m *MockVIPTripRepository) GetDetail(ctx context.Context, tripID int64) (*repository.TripDetail, error) {
	m.mu.RLock()
	vip, ok := m.vips[tripID]
	m.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &repository.TripDetail{
		VIPTrip:   vip,
		Trip:      &domain.Trip{ID: tripID},
		Passenger: m.passengers[vip.PassengerID],
	}, nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64

	// CompletedTrips is returned by CountCompletedTrips.
	CompletedTrips int

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[int64]*domain.User)}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetNotificationInfo(ctx context.Context, id int64) (*domain.NotificationInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.NotificationInfo{
		UUID:              user.UUID,
		FCMTokens:         user.FCMTokens,
		PreferredLanguage: user.PreferredLanguage,
	}, nil
}

func (m *MockUserRepository) CountCompletedTrips(ctx context.Context, passengerID int64) (int, error) {
	return m.CompletedTrips, nil
}

// ──────────────────────────────────────────────
// MOCK WALLET REPOSITORY
// ──────────────────────────────────────────────

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu sync.Mutex

	PassengerBalance float64
	DriverBalance    float64

	Entries            []domain.WalletEntry
	CancelIncrements   map[domain.WalletAccount]int
	DiscountIncrements int

	// Error injection
	ApplyError error
}

// NewMockWalletRepository creates a new mock wallet repository.
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{CancelIncrements: make(map[domain.WalletAccount]int)}
}

func (m *MockWalletRepository) GetBalancesForUpdate(ctx context.Context, passengerID, driverID int64) (float64, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PassengerBalance, m.DriverBalance, nil
}

func (m *MockWalletRepository) ApplyEntries(ctx context.Context, entries []domain.WalletEntry) error {
	if m.ApplyError != nil {
		return m.ApplyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entries...)
	return nil
}

func (m *MockWalletRepository) IncrementCancelCount(ctx context.Context, userID int64, account domain.WalletAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelIncrements[account]++
	return nil
}

func (m *MockWalletRepository) IncrementDiscountUsage(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DiscountIncrements++
	return nil
}

// ──────────────────────────────────────────────
// MOCK OFFER / VEHICLE REPOSITORIES
// ──────────────────────────────────────────────

// MockOfferRepository is a mock implementation of OfferRepository.
type MockOfferRepository struct {
	mu     sync.RWMutex
	offers map[int64][]*domain.Offer

	ListCallCount int32
}

// NewMockOfferRepository creates a new mock offer repository.
func NewMockOfferRepository() *MockOfferRepository {
	return &MockOfferRepository{offers: make(map[int64][]*domain.Offer)}
}

// AddOffer adds an offer for a trip.
func (m *MockOfferRepository) AddOffer(offer *domain.Offer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers[offer.TripID] = append(m.offers[offer.TripID], offer)
}

func (m *MockOfferRepository) ListByTrip(ctx context.Context, tripID int64, page, limit int) (*domain.OfferPage, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.offers[tripID]
	total := len(all)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	totalPages := (total + limit - 1) / limit
	return &domain.OfferPage{
		Offers:     all[start:end],
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu      sync.RWMutex
	serials map[int64]string
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{serials: make(map[int64]string)}
}

// AddVehicle registers a vehicle serial number.
func (m *MockVehicleRepository) AddVehicle(id int64, serialNo string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serials[id] = serialNo
}

func (m *MockVehicleRepository) GetSerialNo(ctx context.Context, vehicleID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	serial, ok := m.serials[vehicleID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return serial, nil
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[int64]bool

	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[int64]bool)}
}

func (m *MockLockStore) AcquireTripLock(ctx context.Context, tripID int64, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[tripID] {
		return false, nil
	}
	m.locks[tripID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseTripLock(ctx context.Context, tripID int64) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, tripID)
	return nil
}

// Lock pre-acquires a trip lock so the next caller is turned away.
func (m *MockLockStore) Lock(tripID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[tripID] = true
}

// MockCacheStore is a mock implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu      sync.Mutex
	entries map[int64][]byte

	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{entries: make(map[int64][]byte)}
}

func (m *MockCacheStore) GetTripDetail(ctx context.Context, tripID int64) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.entries[tripID]
	return payload, ok, nil
}

func (m *MockCacheStore) SetTripDetail(ctx context.Context, tripID int64, payload []byte) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[tripID] = payload
	return nil
}

func (m *MockCacheStore) InvalidateTrip(ctx context.Context, tripID int64) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, tripID)
	return nil
}

// MockLocationStore is a mock implementation of LocationStoreInterface.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]*redis.DriverLocation

	// Error injection
	UpdateError error
	GetError    error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{locations: make(map[string]*redis.DriverLocation)}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[driverID] = &redis.DriverLocation{DriverID: driverID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockLocationStore) GetLocation(ctx context.Context, driverID string) (*redis.DriverLocation, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.locations[driverID], nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, driverID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK ARRIVAL VALIDATOR
// ──────────────────────────────────────────────

// MockArrivalValidator is a mock implementation of service.ArrivalValidator.
type MockArrivalValidator struct {
	// Err is returned as-is: nil means the driver is at the destination.
	Err error

	CallCount int32
}

func (m *MockArrivalValidator) ValidateDriverAtDestination(ctx context.Context, driverID int64, lat, lng float64) error {
	atomic.AddInt32(&m.CallCount, 1)
	return m.Err
}
