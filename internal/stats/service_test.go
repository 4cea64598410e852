package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeops/temple-booking-backend/internal/booking"
	"github.com/templeops/temple-booking-backend/internal/donation"
	"github.com/templeops/temple-booking-backend/internal/event"
	"github.com/templeops/temple-booking-backend/internal/festival"
	"github.com/templeops/temple-booking-backend/internal/room"
)

type fakeRepository struct {
	totals         Totals
	offeringTotals []KindTotal
	window         Window
	popularByKind  map[string][]PopularOffering
	lastSince      time.Time
}

func (r *fakeRepository) Totals(ctx context.Context) (Totals, error) {
	return r.totals, nil
}

func (r *fakeRepository) OfferingTotals(ctx context.Context) ([]KindTotal, error) {
	return r.offeringTotals, nil
}

func (r *fakeRepository) Window(ctx context.Context, since time.Time) (Window, error) {
	r.lastSince = since
	return r.window, nil
}

func (r *fakeRepository) PopularOfferings(ctx context.Context, kind string, limit int) ([]PopularOffering, error) {
	popular := r.popularByKind[kind]
	if len(popular) > limit {
		return popular[:limit], nil
	}
	return popular, nil
}

type fakeBookingService struct {
	recent     []*booking.Booking
	lastFilter booking.Filter
}

func (f *fakeBookingService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	panic("not used")
}

func (f *fakeBookingService) CheckAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*booking.Availability, error) {
	panic("not used")
}

func (f *fakeBookingService) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*booking.Booking, error) {
	panic("not used")
}

func (f *fakeBookingService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	f.lastFilter = filter
	return f.recent, len(f.recent), nil
}

func (f *fakeBookingService) Cancel(ctx context.Context, id, requesterID string) (*booking.Booking, error) {
	panic("not used")
}

func (f *fakeBookingService) AdvanceStatus(ctx context.Context, id string, next booking.Status) (*booking.Booking, error) {
	panic("not used")
}

func (f *fakeBookingService) SetPaymentStatus(ctx context.Context, id string, settled bool) (*booking.Booking, error) {
	panic("not used")
}

type fakeDonationService struct {
	recent []*donation.Donation
}

func (f *fakeDonationService) Create(ctx context.Context, req donation.CreateRequest) (*donation.Donation, error) {
	panic("not used")
}

func (f *fakeDonationService) GetByID(ctx context.Context, id string, requesterID string, isAdmin bool) (*donation.Donation, error) {
	panic("not used")
}

func (f *fakeDonationService) List(ctx context.Context, filter donation.Filter) ([]*donation.Donation, int, error) {
	if len(f.recent) > filter.PageSize {
		return f.recent[:filter.PageSize], len(f.recent), nil
	}
	return f.recent, len(f.recent), nil
}

type fakeEventService struct {
	upcoming []*event.Event
}

func (f *fakeEventService) Create(ctx context.Context, req event.CreateRequest) (*event.Event, error) {
	panic("not used")
}

func (f *fakeEventService) GetByID(ctx context.Context, id string) (*event.Event, error) {
	panic("not used")
}

func (f *fakeEventService) List(ctx context.Context, filter event.Filter) ([]*event.Event, int, error) {
	panic("not used")
}

func (f *fakeEventService) Update(ctx context.Context, id string, req event.UpdateRequest) (*event.Event, error) {
	panic("not used")
}

func (f *fakeEventService) Upcoming(ctx context.Context, limit int) ([]*event.Event, error) {
	if len(f.upcoming) > limit {
		return f.upcoming[:limit], nil
	}
	return f.upcoming, nil
}

func (f *fakeEventService) Register(ctx context.Context, eventID, userID string, people int) (*event.Registration, error) {
	panic("not used")
}

func (f *fakeEventService) ListRegistrations(ctx context.Context, eventID string) ([]*event.Registration, error) {
	panic("not used")
}

func (f *fakeEventService) ListUserRegistrations(ctx context.Context, userID string) ([]*event.Registration, error) {
	panic("not used")
}

type fakeFestivalService struct {
	upcoming []*festival.Festival
}

func (f *fakeFestivalService) Create(ctx context.Context, req festival.CreateRequest) (*festival.Festival, error) {
	panic("not used")
}

func (f *fakeFestivalService) GetByID(ctx context.Context, id string) (*festival.Festival, error) {
	panic("not used")
}

func (f *fakeFestivalService) List(ctx context.Context, filter festival.Filter) ([]*festival.Festival, int, error) {
	panic("not used")
}

func (f *fakeFestivalService) Update(ctx context.Context, id string, req festival.UpdateRequest) (*festival.Festival, error) {
	panic("not used")
}

func (f *fakeFestivalService) Cancel(ctx context.Context, id string) (*festival.Festival, error) {
	panic("not used")
}

func (f *fakeFestivalService) Upcoming(ctx context.Context, limit int) ([]*festival.Festival, error) {
	if len(f.upcoming) > limit {
		return f.upcoming[:limit], nil
	}
	return f.upcoming, nil
}

func (f *fakeFestivalService) RollStatuses(ctx context.Context) (int, error) {
	panic("not used")
}

func (f *fakeFestivalService) Book(ctx context.Context, req festival.BookRequest) (*festival.Booking, error) {
	panic("not used")
}

func (f *fakeFestivalService) GetBookingByID(ctx context.Context, id, requesterID string, isAdmin bool) (*festival.Booking, error) {
	panic("not used")
}

func (f *fakeFestivalService) ListBookings(ctx context.Context, filter festival.BookingFilter) ([]*festival.Booking, int, error) {
	panic("not used")
}

func (f *fakeFestivalService) CancelBooking(ctx context.Context, id, requesterID string) (*festival.Booking, error) {
	panic("not used")
}

func (f *fakeFestivalService) AdvanceBookingStatus(ctx context.Context, id string, next festival.BookingStatus) (*festival.Booking, error) {
	panic("not used")
}

type fakeRoomService struct {
	counts []room.StatusCount
}

func (f *fakeRoomService) CreateType(ctx context.Context, req room.CreateTypeRequest) (*room.RoomType, error) {
	panic("not used")
}

func (f *fakeRoomService) GetTypeByID(ctx context.Context, id string) (*room.RoomType, error) {
	panic("not used")
}

func (f *fakeRoomService) ListTypes(ctx context.Context, templeID string) ([]*room.RoomType, error) {
	panic("not used")
}

func (f *fakeRoomService) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	panic("not used")
}

func (f *fakeRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	panic("not used")
}

func (f *fakeRoomService) List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error) {
	panic("not used")
}

func (f *fakeRoomService) SetStatus(ctx context.Context, id string, status room.Status) error {
	panic("not used")
}

func (f *fakeRoomService) CountByStatus(ctx context.Context) ([]room.StatusCount, error) {
	return f.counts, nil
}

// seededRepository aggregates raw rows the way the SQL-backed repository
// does, instead of returning canned figures.
type seededRepository struct {
	bookings  []*booking.Booking
	donations []*donation.Donation
}

func (r *seededRepository) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	for _, b := range r.bookings {
		t.RoomBookings++
		t.RoomBookingAmount += b.TotalAmount
	}
	for _, d := range r.donations {
		t.Donations++
		t.DonationAmount += d.Amount
	}
	return t, nil
}

func (r *seededRepository) OfferingTotals(ctx context.Context) ([]KindTotal, error) {
	return nil, nil
}

func (r *seededRepository) Window(ctx context.Context, since time.Time) (Window, error) {
	var w Window
	for _, b := range r.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		w.NewBookings++
		w.BookingRevenue += b.TotalAmount
	}
	for _, d := range r.donations {
		if d.CreatedAt.Before(since) {
			continue
		}
		w.DonationAmount += d.Amount
	}
	return w, nil
}

func (r *seededRepository) PopularOfferings(ctx context.Context, kind string, limit int) ([]PopularOffering, error) {
	return nil, nil
}

func newDashboardService(repo Repository, bookings *fakeBookingService) Service {
	return NewService(repo, bookings, &fakeDonationService{}, &fakeEventService{}, &fakeFestivalService{}, &fakeRoomService{})
}

func TestDashboardAssemblesSnapshot(t *testing.T) {
	repo := &fakeRepository{
		totals: Totals{
			Temples: 3, Users: 40, Rooms: 12, RoomBookings: 90, RoomBookingAmount: 410000,
			FestivalBookings: 14, EventRegistrations: 28, Donations: 15, DonationAmount: 25000,
		},
		offeringTotals: []KindTotal{
			{Kind: "darshan", Bookings: 40, Amount: 0},
			{Kind: "pooja", Bookings: 25, Amount: 31000},
			{Kind: "seva", Bookings: 52, Amount: 64000},
		},
		window: Window{NewBookings: 8, BookingRevenue: 32000, DonationAmount: 4000, NewRegistrations: 5},
		popularByKind: map[string][]PopularOffering{
			"seva":  {{Name: "Abhishekam", Kind: "seva", Bookings: 30}},
			"pooja": {{Name: "Archana", Kind: "pooja", Bookings: 22}},
		},
	}
	bookings := &fakeBookingService{recent: []*booking.Booking{{ID: "b1"}, {ID: "b2"}}}
	donations := &fakeDonationService{recent: []*donation.Donation{{ID: "d1", Amount: 500}}}
	events := &fakeEventService{upcoming: []*event.Event{{ID: "e1"}}}
	festivals := &fakeFestivalService{upcoming: []*festival.Festival{{ID: "f1"}, {ID: "f2"}}}
	rooms := &fakeRoomService{counts: []room.StatusCount{
		{Status: room.StatusAvailable, Count: 9},
		{Status: room.StatusMaintenance, Count: 3},
	}}

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(repo, bookings, donations, events, festivals, rooms)
	svc.(*service).now = func() time.Time { return now }

	snap, err := svc.Dashboard(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, now, snap.GeneratedAt)
	assert.Equal(t, 40, snap.Totals.Users)
	assert.Equal(t, 14, snap.Totals.FestivalBookings)
	assert.Equal(t, DefaultLookbackDays, snap.Window.Days)
	assert.Equal(t, now.AddDate(0, 0, -DefaultLookbackDays), repo.lastSince)
	assert.Len(t, snap.OfferingTotals, 3)
	assert.Len(t, snap.RecentBookings, 2)
	assert.Len(t, snap.RecentDonations, 1)
	assert.Len(t, snap.UpcomingEvents, 1)
	assert.Len(t, snap.UpcomingFestivals, 2)
	assert.Len(t, snap.RoomStatus, 2)

	// Seva and pooja rankings stay separate.
	require.Len(t, snap.PopularSevas, 1)
	assert.Equal(t, "Abhishekam", snap.PopularSevas[0].Name)
	require.Len(t, snap.PopularPoojas, 1)
	assert.Equal(t, "Archana", snap.PopularPoojas[0].Name)

	// Recent bookings are requested newest-first and capped.
	assert.Equal(t, "created_at", bookings.lastFilter.SortBy)
	assert.Equal(t, "DESC", bookings.lastFilter.SortOrder)
	assert.Equal(t, 5, bookings.lastFilter.PageSize)
}

func TestDashboardHonorsLookback(t *testing.T) {
	repo := &fakeRepository{}
	svc := newDashboardService(repo, &fakeBookingService{})
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return now }

	snap, err := svc.Dashboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Window.Days)
	assert.Equal(t, now.AddDate(0, 0, -7), repo.lastSince)
}

func TestWindowCoveringAllRowsMatchesTotals(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	repo := &seededRepository{
		bookings: []*booking.Booking{
			{ID: "b1", TotalAmount: 3000, CreatedAt: now.AddDate(0, 0, -2)},
			{ID: "b2", TotalAmount: 4500, CreatedAt: now.AddDate(0, 0, -20)},
			{ID: "b3", TotalAmount: 1500, CreatedAt: now.AddDate(0, 0, -40)},
		},
		donations: []*donation.Donation{
			{ID: "d1", Amount: 500, CreatedAt: now.AddDate(0, 0, -1)},
			{ID: "d2", Amount: 2000, CreatedAt: now.AddDate(0, 0, -35)},
		},
	}
	svc := newDashboardService(repo, &fakeBookingService{})
	svc.(*service).now = func() time.Time { return now }

	// A window reaching past the oldest row re-aggregates to the same
	// figures as the all-time totals.
	wide, err := svc.Dashboard(context.Background(), 60)
	require.NoError(t, err)
	assert.Equal(t, wide.Totals.RoomBookings, wide.Window.NewBookings)
	assert.Equal(t, wide.Totals.RoomBookingAmount, wide.Window.BookingRevenue)
	assert.Equal(t, wide.Totals.DonationAmount, wide.Window.DonationAmount)

	// A narrower window drops the older rows; totals are unaffected.
	narrow, err := svc.Dashboard(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, narrow.Window.NewBookings)
	assert.Equal(t, 7500.0, narrow.Window.BookingRevenue)
	assert.Equal(t, 500.0, narrow.Window.DonationAmount)
	assert.Equal(t, 3, narrow.Totals.RoomBookings)
}

func TestDashboardReadsOnly(t *testing.T) {
	repo := &fakeRepository{totals: Totals{Users: 3}}
	svc := newDashboardService(repo, &fakeBookingService{})

	first, err := svc.Dashboard(context.Background(), 10)
	require.NoError(t, err)
	second, err := svc.Dashboard(context.Background(), 10)
	require.NoError(t, err)

	// Same underlying state, same snapshot (timestamps aside).
	first.GeneratedAt = second.GeneratedAt
	assert.Equal(t, first, second)
}
