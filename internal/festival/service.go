package festival

import (
	"context"
	"log"
	"time"

	"github.com/templeops/temple-booking-backend/internal/temple"
)

type CreateRequest struct {
	TempleID           string
	Name               string
	Description        string
	StartDate          time.Time
	EndDate            time.Time
	ExpectedAttendance int
}

type UpdateRequest struct {
	Name               *string
	Description        *string
	StartDate          *time.Time
	EndDate            *time.Time
	ExpectedAttendance *int
}

type BookRequest struct {
	FestivalID string
	UserID     string
	People     int
	Notes      string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Festival, error)
	GetByID(ctx context.Context, id string) (*Festival, error)
	List(ctx context.Context, filter Filter) ([]*Festival, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Festival, error)

	// Cancel calls off a festival. Cancelled festivals take no bookings
	// and are left alone by the status roller.
	Cancel(ctx context.Context, id string) (*Festival, error)

	// Upcoming returns festivals still running or yet to start, soonest
	// first, capped at limit.
	Upcoming(ctx context.Context, limit int) ([]*Festival, error)

	// RollStatuses brings every festival's status in line with today's
	// date. Safe to run repeatedly; a second run on the same day changes
	// nothing.
	RollStatuses(ctx context.Context) (int, error)

	Book(ctx context.Context, req BookRequest) (*Booking, error)
	GetBookingByID(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error)
	CancelBooking(ctx context.Context, id, requesterID string) (*Booking, error)
	AdvanceBookingStatus(ctx context.Context, id string, next BookingStatus) (*Booking, error)
}

type service struct {
	repo          Repository
	templeService temple.Service
	now           func() time.Time
}

func NewService(repo Repository, templeService temple.Service) Service {
	return &service{
		repo:          repo,
		templeService: templeService,
		now:           time.Now,
	}
}

func normalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Festival, error) {
	start := normalizeDate(req.StartDate)
	end := normalizeDate(req.EndDate)
	if end.Before(start) {
		return nil, ErrInvalidSchedule
	}
	if _, err := s.templeService.GetByID(ctx, req.TempleID); err != nil {
		return nil, err
	}

	f := &Festival{
		TempleID:           req.TempleID,
		Name:               req.Name,
		Description:        req.Description,
		StartDate:          start,
		EndDate:            end,
		ExpectedAttendance: req.ExpectedAttendance,
		Status:             StatusFor(start, end, normalizeDate(s.now())),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Festival, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Festival, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Festival, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.StartDate != nil {
		f.StartDate = normalizeDate(*req.StartDate)
	}
	if req.EndDate != nil {
		f.EndDate = normalizeDate(*req.EndDate)
	}
	if req.ExpectedAttendance != nil {
		f.ExpectedAttendance = *req.ExpectedAttendance
	}
	if f.EndDate.Before(f.StartDate) {
		return nil, ErrInvalidSchedule
	}

	// Date edits may move the festival across a status boundary.
	// Cancelled festivals stay cancelled.
	if f.Status != StatusCancelled {
		f.Status = StatusFor(f.StartDate, f.EndDate, normalizeDate(s.now()))
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Festival, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	f.Status = StatusCancelled
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Upcoming(ctx context.Context, limit int) ([]*Festival, error) {
	return s.repo.Upcoming(ctx, normalizeDate(s.now()), limit)
}

func (s *service) RollStatuses(ctx context.Context) (int, error) {
	changed, err := s.repo.RollStatuses(ctx, normalizeDate(s.now()))
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		log.Printf("festival status roll updated %d festivals", changed)
	}
	return changed, nil
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Booking, error) {
	if req.People < 1 {
		return nil, ErrInvalidPeople
	}

	f, err := s.repo.GetByID(ctx, req.FestivalID)
	if err != nil {
		return nil, err
	}
	if !f.Status.Bookable() {
		return nil, ErrClosed
	}

	b := &Booking{
		FestivalID:   f.ID,
		FestivalName: f.Name,
		TempleID:     f.TempleID,
		UserID:       req.UserID,
		People:       req.People,
		Notes:        req.Notes,
		Status:       BookingPending,
	}
	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBookingByID(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error) {
	return s.repo.ListBookings(ctx, filter)
}

func (s *service) CancelBooking(ctx context.Context, id, requesterID string) (*Booking, error) {
	return s.repo.MutateBooking(ctx, id, func(b *Booking) error {
		if b.UserID != requesterID {
			return ErrPermissionDenied
		}
		if b.Status != BookingPending {
			return ErrNotCancellable
		}
		b.Status = BookingCancelled
		return nil
	})
}

func (s *service) AdvanceBookingStatus(ctx context.Context, id string, next BookingStatus) (*Booking, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.MutateBooking(ctx, id, func(b *Booking) error {
		if !b.Status.CanTransition(next) {
			return ErrInvalidTransition
		}
		b.Status = next
		return nil
	})
}
