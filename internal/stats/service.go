package stats

import (
	"context"
	"time"

	"github.com/templeops/temple-booking-backend/internal/booking"
	"github.com/templeops/temple-booking-backend/internal/donation"
	"github.com/templeops/temple-booking-backend/internal/event"
	"github.com/templeops/temple-booking-backend/internal/festival"
	"github.com/templeops/temple-booking-backend/internal/offering"
	"github.com/templeops/temple-booking-backend/internal/room"
)

const (
	DefaultLookbackDays = 30
	highlightLimit      = 5
)

type Service interface {
	// Dashboard assembles a read-only snapshot of the whole system.
	// lookbackDays bounds the activity window; values below 1 fall back
	// to the default.
	Dashboard(ctx context.Context, lookbackDays int) (*Snapshot, error)
}

type service struct {
	repo            Repository
	bookingService  booking.Service
	donationService donation.Service
	eventService    event.Service
	festivalService festival.Service
	roomService     room.Service
	now             func() time.Time
}

func NewService(
	repo Repository,
	bookingService booking.Service,
	donationService donation.Service,
	eventService event.Service,
	festivalService festival.Service,
	roomService room.Service,
) Service {
	return &service{
		repo:            repo,
		bookingService:  bookingService,
		donationService: donationService,
		eventService:    eventService,
		festivalService: festivalService,
		roomService:     roomService,
		now:             time.Now,
	}
}

func (s *service) Dashboard(ctx context.Context, lookbackDays int) (*Snapshot, error) {
	if lookbackDays < 1 {
		lookbackDays = DefaultLookbackDays
	}
	now := s.now()

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	offeringTotals, err := s.repo.OfferingTotals(ctx)
	if err != nil {
		return nil, err
	}

	window, err := s.repo.Window(ctx, now.AddDate(0, 0, -lookbackDays))
	if err != nil {
		return nil, err
	}
	window.Days = lookbackDays

	roomStatus, err := s.roomService.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.bookingService.List(ctx, booking.Filter{
		Page:      1,
		PageSize:  highlightLimit,
		SortBy:    "created_at",
		SortOrder: "DESC",
	})
	if err != nil {
		return nil, err
	}

	// Donation listing defaults to newest-first.
	recentDonations, _, err := s.donationService.List(ctx, donation.Filter{
		Page:     1,
		PageSize: highlightLimit,
	})
	if err != nil {
		return nil, err
	}

	upcomingEvents, err := s.eventService.Upcoming(ctx, highlightLimit)
	if err != nil {
		return nil, err
	}

	upcomingFestivals, err := s.festivalService.Upcoming(ctx, highlightLimit)
	if err != nil {
		return nil, err
	}

	popularSevas, err := s.repo.PopularOfferings(ctx, string(offering.KindSeva), highlightLimit)
	if err != nil {
		return nil, err
	}

	popularPoojas, err := s.repo.PopularOfferings(ctx, string(offering.KindPooja), highlightLimit)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		GeneratedAt:       now,
		Totals:            totals,
		OfferingTotals:    offeringTotals,
		Window:            window,
		RoomStatus:        roomStatus,
		RecentBookings:    recent,
		RecentDonations:   recentDonations,
		UpcomingEvents:    upcomingEvents,
		UpcomingFestivals: upcomingFestivals,
		PopularSevas:      popularSevas,
		PopularPoojas:     popularPoojas,
	}, nil
}
