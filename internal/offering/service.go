package offering

import (
	"context"
	"time"

	"github.com/templeops/temple-booking-backend/internal/temple"
)

type CreateOfferingRequest struct {
	TempleID    string
	Name        string
	Kind        Kind
	Description string
	Price       float64
	MaxPerDay   int
}

type UpdateOfferingRequest struct {
	Name        *string
	Description *string
	Price       *float64
	MaxPerDay   *int
	IsActive    *bool
}

type BookRequest struct {
	OfferingID   string
	UserID       string
	Date         time.Time
	People       int
	DevoteeNames string
}

type Service interface {
	Create(ctx context.Context, req CreateOfferingRequest) (*Offering, error)
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, id string, req UpdateOfferingRequest) (*Offering, error)

	// Book reserves the offering for a party on a date. When capacity
	// enforcement is on and the offering has a daily cap, the booking is
	// rejected once the cap would be exceeded. New bookings start pending.
	Book(ctx context.Context, req BookRequest) (*Booking, error)

	GetBookingByID(ctx context.Context, id string, requesterID string, isAdmin bool) (*Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error)

	// CancelBooking is the owner's path: only while still pending.
	CancelBooking(ctx context.Context, id string, requesterID string) (*Booking, error)

	// AdvanceBookingStatus is the administrator path.
	AdvanceBookingStatus(ctx context.Context, id string, next Status) (*Booking, error)

	SetBookingPaymentStatus(ctx context.Context, id string, settled bool) (*Booking, error)
}

type service struct {
	repo            Repository
	templeService   temple.Service
	enforceCapacity bool
	now             func() time.Time
}

func NewService(repo Repository, templeService temple.Service, enforceCapacity bool) Service {
	return &service{
		repo:            repo,
		templeService:   templeService,
		enforceCapacity: enforceCapacity,
		now:             time.Now,
	}
}

func normalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateOfferingRequest) (*Offering, error) {
	if !req.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if req.Price < 0 {
		return nil, ErrNonPositivePrice
	}
	if _, err := s.templeService.GetByID(ctx, req.TempleID); err != nil {
		return nil, err
	}

	o := &Offering{
		TempleID:    req.TempleID,
		Name:        req.Name,
		Kind:        req.Kind,
		Description: req.Description,
		Price:       req.Price,
		MaxPerDay:   req.MaxPerDay,
		IsActive:    true,
	}
	if o.MaxPerDay < 0 {
		o.MaxPerDay = 0
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Offering, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateOfferingRequest) (*Offering, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrNonPositivePrice
		}
		o.Price = *req.Price
	}
	if req.MaxPerDay != nil {
		o.MaxPerDay = *req.MaxPerDay
		if o.MaxPerDay < 0 {
			o.MaxPerDay = 0
		}
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Booking, error) {
	if req.People < 1 {
		return nil, ErrInvalidPeople
	}

	date := normalizeDate(req.Date)
	if date.Before(normalizeDate(s.now())) {
		return nil, ErrDateInPast
	}

	o, err := s.repo.GetByID(ctx, req.OfferingID)
	if err != nil {
		return nil, err
	}
	if !o.IsActive {
		return nil, ErrInactive
	}

	b := &Booking{
		OfferingID:   o.ID,
		UserID:       req.UserID,
		Date:         date,
		People:       req.People,
		DevoteeNames: req.DevoteeNames,
		Status:       StatusPending,
		// Flat per-booking price; party size does not scale the amount.
		Amount: o.Price,
	}

	maxPerDay := o.MaxPerDay
	if !s.enforceCapacity {
		maxPerDay = 0
	}
	if err := s.repo.CreateBookingIfCapacity(ctx, b, maxPerDay); err != nil {
		return nil, err
	}

	b.OfferingName = o.Name
	b.Kind = o.Kind
	b.TempleID = o.TempleID
	return b, nil
}

func (s *service) GetBookingByID(ctx context.Context, id string, requesterID string, isAdmin bool) (*Booking, error) {
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

func (s *service) CancelBooking(ctx context.Context, id string, requesterID string) (*Booking, error) {
	return s.repo.MutateBooking(ctx, id, func(b *Booking) error {
		if b.UserID != requesterID {
			return ErrPermissionDenied
		}
		if b.Status != StatusPending {
			return ErrNotCancellable
		}
		b.Status = StatusCancelled
		return nil
	})
}

func (s *service) AdvanceBookingStatus(ctx context.Context, id string, next Status) (*Booking, error) {
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

func (s *service) SetBookingPaymentStatus(ctx context.Context, id string, settled bool) (*Booking, error) {
	return s.repo.MutateBooking(ctx, id, func(b *Booking) error {
		b.PaymentSettled = settled
		return nil
	})
}
