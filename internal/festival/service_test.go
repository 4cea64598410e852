package festival

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

func TestStatusFor(t *testing.T) {
	start := date(2026, 10, 10)
	end := date(2026, 10, 14)

	assert.Equal(t, StatusUpcoming, StatusFor(start, end, date(2026, 10, 9)))
	// Both bounds are inclusive.
	assert.Equal(t, StatusOngoing, StatusFor(start, end, date(2026, 10, 10)))
	assert.Equal(t, StatusOngoing, StatusFor(start, end, date(2026, 10, 12)))
	assert.Equal(t, StatusOngoing, StatusFor(start, end, date(2026, 10, 14)))
	assert.Equal(t, StatusCompleted, StatusFor(start, end, date(2026, 10, 15)))

	// Single-day festival.
	assert.Equal(t, StatusOngoing, StatusFor(start, start, date(2026, 10, 10)))
	assert.Equal(t, StatusCompleted, StatusFor(start, start, date(2026, 10, 11)))
}

type fakeRepository struct {
	mu        sync.Mutex
	festivals map[string]*Festival
	bookings  map[string]*Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		festivals: make(map[string]*Festival),
		bookings:  make(map[string]*Booking),
	}
}

func (r *fakeRepository) Create(ctx context.Context, f *Festival) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = uuid.NewString()
	clone := *f
	r.festivals[f.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Festival, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.festivals[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Festival, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Festival
	for _, f := range r.festivals {
		if filter.Status != "" && string(f.Status) != filter.Status {
			continue
		}
		clone := *f
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, f *Festival) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.festivals[f.ID]; !ok {
		return ErrNotFound
	}
	clone := *f
	r.festivals[f.ID] = &clone
	return nil
}

func (r *fakeRepository) Upcoming(ctx context.Context, today time.Time, limit int) ([]*Festival, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Festival
	for _, f := range r.festivals {
		if f.EndDate.Before(today) || f.Status == StatusCancelled {
			continue
		}
		clone := *f
		out = append(out, &clone)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) RollStatuses(ctx context.Context, today time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := 0
	for _, f := range r.festivals {
		if f.Status == StatusCancelled {
			continue
		}
		want := StatusFor(f.StartDate, f.EndDate, today)
		if f.Status != want {
			f.Status = want
			changed++
		}
	}
	return changed, nil
}

func (r *fakeRepository) CreateBooking(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
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
		if filter.FestivalID != "" && b.FestivalID != filter.FestivalID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
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

func newTestService(now time.Time) (Service, *fakeRepository, string) {
	repo := newFakeRepository()
	tpl := &temple.Temple{ID: uuid.NewString(), Name: "Meenakshi Amman"}
	temples := &fakeTempleService{temples: map[string]*temple.Temple{tpl.ID: tpl}}
	svc := NewService(repo, temples)
	svc.(*service).now = func() time.Time { return now }
	return svc, repo, tpl.ID
}

func TestCreateDerivesStatusFromDates(t *testing.T) {
	svc, _, templeID := newTestService(date(2026, 10, 12))

	upcoming, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Diwali",
		StartDate: date(2026, 11, 8), EndDate: date(2026, 11, 12),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, upcoming.Status)

	ongoing, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Navaratri",
		StartDate: date(2026, 10, 11), EndDate: date(2026, 10, 19),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusOngoing, ongoing.Status)

	_, err = svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Backwards",
		StartDate: date(2026, 10, 19), EndDate: date(2026, 10, 11),
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestRollStatusesIsIdempotent(t *testing.T) {
	svc, repo, templeID := newTestService(date(2026, 10, 1))

	f, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Pongal",
		StartDate: date(2026, 10, 10), EndDate: date(2026, 10, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, f.Status)

	// Move the clock into the festival window.
	svc.(*service).now = func() time.Time { return date(2026, 10, 12) }

	changed, err := svc.RollStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := repo.GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOngoing, got.Status)

	// A second roll on the same day changes nothing.
	changed, err = svc.RollStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	// Past the end date the festival completes.
	svc.(*service).now = func() time.Time { return date(2026, 10, 20) }
	changed, err = svc.RollStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err = repo.GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestUpdateRecomputesStatus(t *testing.T) {
	svc, _, templeID := newTestService(date(2026, 10, 12))

	f, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Holi",
		StartDate: date(2026, 11, 1), EndDate: date(2026, 11, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, f.Status)

	// Pulling the dates back over today flips the status to ongoing.
	start := date(2026, 10, 11)
	end := date(2026, 10, 13)
	updated, err := svc.Update(context.Background(), f.ID, UpdateRequest{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, StatusOngoing, updated.Status)
}

func TestCancelledFestivalStaysCancelled(t *testing.T) {
	svc, repo, templeID := newTestService(date(2026, 10, 1))

	f, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Ratha Yatra",
		StartDate: date(2026, 10, 10), EndDate: date(2026, 10, 14),
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), f.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	// The roller leaves cancelled festivals alone even inside their window.
	svc.(*service).now = func() time.Time { return date(2026, 10, 12) }
	changed, err := svc.RollStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	got, err := repo.GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestBookRequiresOpenFestival(t *testing.T) {
	svc, _, templeID := newTestService(date(2026, 10, 1))

	open, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Diwali",
		StartDate: date(2026, 10, 10), EndDate: date(2026, 10, 14),
	})
	require.NoError(t, err)

	b, err := svc.Book(context.Background(), BookRequest{
		FestivalID: open.ID, UserID: uuid.NewString(), People: 4, Notes: "wheelchair access",
	})
	require.NoError(t, err)
	assert.Equal(t, BookingPending, b.Status)
	assert.Equal(t, open.ID, b.FestivalID)

	_, err = svc.Book(context.Background(), BookRequest{
		FestivalID: open.ID, UserID: uuid.NewString(), People: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidPeople)

	done, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Last Year",
		StartDate: date(2026, 9, 1), EndDate: date(2026, 9, 3),
	})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, done.Status)

	_, err = svc.Book(context.Background(), BookRequest{
		FestivalID: done.ID, UserID: uuid.NewString(), People: 2,
	})
	assert.ErrorIs(t, err, ErrClosed)

	cancelled, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Called Off",
		StartDate: date(2026, 11, 1), EndDate: date(2026, 11, 2),
	})
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), cancelled.ID)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), BookRequest{
		FestivalID: cancelled.ID, UserID: uuid.NewString(), People: 2,
	})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCancelBookingPendingAndOwnerOnly(t *testing.T) {
	svc, _, templeID := newTestService(date(2026, 10, 1))

	f, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Navaratri",
		StartDate: date(2026, 10, 10), EndDate: date(2026, 10, 19),
	})
	require.NoError(t, err)

	owner := uuid.NewString()
	b, err := svc.Book(context.Background(), BookRequest{FestivalID: f.ID, UserID: owner, People: 2})
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), b.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := svc.GetBookingByID(context.Background(), b.ID, owner, false)
	require.NoError(t, err)
	assert.Equal(t, BookingPending, got.Status)

	cancelled, err := svc.CancelBooking(context.Background(), b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, BookingCancelled, cancelled.Status)

	_, err = svc.CancelBooking(context.Background(), b.ID, owner)
	assert.ErrorIs(t, err, ErrNotCancellable)

	// Confirmed bookings are past self-service cancellation.
	b2, err := svc.Book(context.Background(), BookRequest{FestivalID: f.ID, UserID: owner, People: 1})
	require.NoError(t, err)
	_, err = svc.AdvanceBookingStatus(context.Background(), b2.ID, BookingConfirmed)
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), b2.ID, owner)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestAdvanceBookingStatus(t *testing.T) {
	svc, _, templeID := newTestService(date(2026, 10, 1))

	f, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Pongal",
		StartDate: date(2026, 10, 10), EndDate: date(2026, 10, 14),
	})
	require.NoError(t, err)

	b, err := svc.Book(context.Background(), BookRequest{FestivalID: f.ID, UserID: uuid.NewString(), People: 3})
	require.NoError(t, err)

	confirmed, err := svc.AdvanceBookingStatus(context.Background(), b.ID, BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, confirmed.Status)

	// confirmed -> pending never happens.
	_, err = svc.AdvanceBookingStatus(context.Background(), b.ID, BookingPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// An admin may still cancel a confirmed booking.
	cancelled, err := svc.AdvanceBookingStatus(context.Background(), b.ID, BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, BookingCancelled, cancelled.Status)

	_, err = svc.AdvanceBookingStatus(context.Background(), b.ID, BookingConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.AdvanceBookingStatus(context.Background(), b.ID, BookingStatus("checked_in"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBookingMutationRefreshesUpdatedAt(t *testing.T) {
	svc, repo, templeID := newTestService(date(2026, 10, 1))

	f, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Holi",
		StartDate: date(2026, 10, 10), EndDate: date(2026, 10, 12),
	})
	require.NoError(t, err)

	b, err := svc.Book(context.Background(), BookRequest{FestivalID: f.ID, UserID: uuid.NewString(), People: 2})
	require.NoError(t, err)

	// Age the stored row so the refreshed stamp is unmistakable.
	repo.mu.Lock()
	repo.bookings[b.ID].UpdatedAt = repo.bookings[b.ID].UpdatedAt.Add(-time.Hour)
	stale := repo.bookings[b.ID].UpdatedAt
	repo.mu.Unlock()

	confirmed, err := svc.AdvanceBookingStatus(context.Background(), b.ID, BookingConfirmed)
	require.NoError(t, err)
	assert.True(t, confirmed.UpdatedAt.After(stale))
}
