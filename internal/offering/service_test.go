package offering

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeops/temple-booking-backend/internal/temple"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeRepository struct {
	mu        sync.Mutex
	offerings map[string]*Offering
	bookings  map[string]*Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		offerings: make(map[string]*Offering),
		bookings:  make(map[string]*Booking),
	}
}

func (r *fakeRepository) Create(ctx context.Context, o *Offering) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	clone := *o
	r.offerings[o.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Offering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offerings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Offering
	for _, o := range r.offerings {
		if filter.Kind != "" && string(o.Kind) != filter.Kind {
			continue
		}
		if filter.ActiveOnly && !o.IsActive {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, o *Offering) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offerings[o.ID]; !ok {
		return ErrNotFound
	}
	clone := *o
	r.offerings[o.ID] = &clone
	return nil
}

func (r *fakeRepository) CreateBookingIfCapacity(ctx context.Context, b *Booking, maxPerDay int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if maxPerDay > 0 {
		booked := r.bookedPeopleLocked(b.OfferingID, b.Date)
		if booked+b.People > maxPerDay {
			return ErrCapacityReached
		}
	}

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepository) bookedPeopleLocked(offeringID string, d time.Time) int {
	total := 0
	for _, b := range r.bookings {
		if b.OfferingID != offeringID || !b.Date.Equal(d) {
			continue
		}
		for _, s := range ActiveStatuses {
			if b.Status == s {
				total += b.People
				break
			}
		}
	}
	return total
}

func (r *fakeRepository) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepository) ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepository) BookedPeople(ctx context.Context, offeringID string, d time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookedPeopleLocked(offeringID, d), nil
}

func (r *fakeRepository) MutateBooking(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now().UTC()
	clone := *b
	return &clone, nil
}

type fakeTempleService struct {
	temples map[string]*temple.Temple
}

func newFakeTempleService() *fakeTempleService {
	return &fakeTempleService{temples: make(map[string]*temple.Temple)}
}

func (f *fakeTempleService) addTemple() *temple.Temple {
	t := &temple.Temple{ID: uuid.NewString(), Name: "Sri Venkateswara"}
	f.temples[t.ID] = t
	return t
}

func (f *fakeTempleService) Create(ctx context.Context, req temple.CreateRequest) (*temple.Temple, error) {
	panic("not used")
}

func (f *fakeTempleService) GetByID(ctx context.Context, id string) (*temple.Temple, error) {
	t, ok := f.temples[id]
	if !ok {
		return nil, temple.ErrNotFound
	}
	return t, nil
}

func (f *fakeTempleService) List(ctx context.Context, filter temple.Filter) ([]*temple.Temple, int, error) {
	panic("not used")
}

func (f *fakeTempleService) Update(ctx context.Context, id string, req temple.UpdateRequest) (*temple.Temple, error) {
	panic("not used")
}

func newTestService(enforceCapacity bool) (Service, *fakeRepository, *temple.Temple) {
	repo := newFakeRepository()
	temples := newFakeTempleService()
	t := temples.addTemple()
	svc := NewService(repo, temples, enforceCapacity)
	svc.(*service).now = func() time.Time { return date(2026, 9, 1) }
	return svc, repo, t
}

func createOffering(t *testing.T, svc Service, templeID string, price float64, maxPerDay int) *Offering {
	t.Helper()
	o, err := svc.Create(context.Background(), CreateOfferingRequest{
		TempleID:  templeID,
		Name:      "Abhishekam",
		Kind:      KindSeva,
		Price:     price,
		MaxPerDay: maxPerDay,
	})
	require.NoError(t, err)
	return o
}

func TestBookStoresFlatPrice(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 250, 0)

	b, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)

	// The amount is the offering price, regardless of party size.
	assert.Equal(t, 250.0, b.Amount)

	solo, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, solo.Amount)
}

func TestBookFreeOfferingCostsNothing(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 0, 0)

	b, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Amount)
}

func TestBookEnforcesDailyCap(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 100, 5)

	_, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 3,
	})
	require.NoError(t, err)

	// 3 + 3 > 5: over the cap.
	_, err = svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 3,
	})
	assert.ErrorIs(t, err, ErrCapacityReached)

	// 3 + 2 == 5: exactly at the cap is allowed.
	_, err = svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 2,
	})
	assert.NoError(t, err)

	// A different date has its own headcount.
	_, err = svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 6), People: 5,
	})
	assert.NoError(t, err)
}

func TestBookCancelledSeatsAreReleased(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 100, 5)
	owner := uuid.NewString()

	first, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: owner,
		Date: date(2026, 9, 5), People: 5,
	})
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 1,
	})
	assert.ErrorIs(t, err, ErrCapacityReached)

	_, err = svc.CancelBooking(context.Background(), first.ID, owner)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 5,
	})
	assert.NoError(t, err)
}

func TestBookCapDisabledByConfig(t *testing.T) {
	svc, _, tpl := newTestService(false)
	o := createOffering(t, svc, tpl.ID, 100, 2)

	for i := 0; i < 3; i++ {
		_, err := svc.Book(context.Background(), BookRequest{
			OfferingID: o.ID, UserID: uuid.NewString(),
			Date: date(2026, 9, 5), People: 2,
		})
		assert.NoError(t, err)
	}
}

func TestBookUncappedOffering(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 100, 0)

	for i := 0; i < 10; i++ {
		_, err := svc.Book(context.Background(), BookRequest{
			OfferingID: o.ID, UserID: uuid.NewString(),
			Date: date(2026, 9, 5), People: 10,
		})
		assert.NoError(t, err)
	}
}

func TestBookRejectsPastDateAndInactive(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 100, 0)

	_, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 8, 30), People: 1,
	})
	assert.ErrorIs(t, err, ErrDateInPast)

	off := false
	_, err = svc.Update(context.Background(), o.ID, UpdateOfferingRequest{IsActive: &off})
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 1,
	})
	assert.ErrorIs(t, err, ErrInactive)
}

func TestCancelBookingPendingOnly(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 100, 0)
	owner := uuid.NewString()

	b, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: owner,
		Date: date(2026, 9, 5), People: 1,
	})
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), b.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.AdvanceBookingStatus(context.Background(), b.ID, StatusConfirmed)
	require.NoError(t, err)

	// Confirmed bookings are out of the owner's reach.
	_, err = svc.CancelBooking(context.Background(), b.ID, owner)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestAdvanceBookingStatusChain(t *testing.T) {
	svc, _, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 100, 0)

	b, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 1,
	})
	require.NoError(t, err)

	_, err = svc.AdvanceBookingStatus(context.Background(), b.ID, StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.AdvanceBookingStatus(context.Background(), b.ID, StatusConfirmed)
	require.NoError(t, err)

	done, err := svc.AdvanceBookingStatus(context.Background(), b.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	_, err = svc.AdvanceBookingStatus(context.Background(), b.ID, StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookingMutationRefreshesUpdatedAt(t *testing.T) {
	svc, repo, tpl := newTestService(true)
	o := createOffering(t, svc, tpl.ID, 100, 0)

	b, err := svc.Book(context.Background(), BookRequest{
		OfferingID: o.ID, UserID: uuid.NewString(),
		Date: date(2026, 9, 5), People: 1,
	})
	require.NoError(t, err)

	// Age the stored row so the refreshed stamp is unmistakable.
	repo.mu.Lock()
	repo.bookings[b.ID].UpdatedAt = repo.bookings[b.ID].UpdatedAt.Add(-time.Hour)
	stale := repo.bookings[b.ID].UpdatedAt
	repo.mu.Unlock()

	settled, err := svc.SetBookingPaymentStatus(context.Background(), b.ID, true)
	require.NoError(t, err)
	assert.True(t, settled.PaymentSettled)
	assert.True(t, settled.UpdatedAt.After(stale))
}
