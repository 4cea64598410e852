package booking

import (
	"context"
	"time"

	"github.com/templeops/temple-booking-backend/internal/room"
)

type CreateRequest struct {
	UserID   string
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
	Requests string
}

// Availability is the outcome of a pure availability probe.
type Availability struct {
	Available   bool
	Nights      int
	TotalAmount float64
}

type Service interface {
	// Create validates the stay, prices it, and inserts it atomically with
	// the conflict check. The new booking starts in StatusBooked.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// CheckAvailability is a side-effect-free probe of the same predicate
	// Create enforces. Identical inputs against identical state always
	// return the same answer.
	CheckAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*Availability, error)

	GetByID(ctx context.Context, id string, requesterID string, isAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel is the owner's self-service path: only the requester may
	// cancel, and only while the booking is still in StatusBooked.
	Cancel(ctx context.Context, id string, requesterID string) (*Booking, error)

	// AdvanceStatus is the administrator path; it may move a booking along
	// any legal edge, including cancelling a confirmed stay.
	AdvanceStatus(ctx context.Context, id string, next Status) (*Booking, error)

	// SetPaymentStatus flips the settled flag; independent of Status.
	SetPaymentStatus(ctx context.Context, id string, settled bool) (*Booking, error)
}

type service struct {
	repo        Repository
	roomService room.Service
}

func NewService(repo Repository, roomService room.Service) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
	}
}

// normalizeDate truncates a timestamp to its UTC calendar date. Stays are
// date-granular; times sent by clients must not shift the overlap math.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	checkIn := normalizeDate(req.CheckIn)
	checkOut := normalizeDate(req.CheckOut)

	// Fail fast on a malformed window; never reach the conflict search.
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidStayRange
	}
	if req.Adults < 1 {
		return nil, ErrInvalidPartySize
	}

	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		if err == room.ErrNotFound {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !rm.Status.Bookable() {
		return nil, ErrRoomClosed
	}

	rt, err := s.roomService.GetTypeByID(ctx, rm.RoomTypeID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		UserID:      req.UserID,
		RoomID:      req.RoomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Adults:      req.Adults,
		Children:    req.Children,
		Requests:    req.Requests,
		Status:      StatusBooked,
		TotalAmount: rt.PricePerNight * float64(Nights(checkIn, checkOut)),
	}

	if err := s.repo.CreateIfVacant(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) CheckAvailability(ctx context.Context, roomID string, checkIn, checkOut time.Time) (*Availability, error) {
	checkIn = normalizeDate(checkIn)
	checkOut = normalizeDate(checkOut)

	if !checkOut.After(checkIn) {
		return nil, ErrInvalidStayRange
	}

	rm, err := s.roomService.GetByID(ctx, roomID)
	if err != nil {
		if err == room.ErrNotFound {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !rm.Status.Bookable() {
		return &Availability{Available: false}, nil
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, roomID, checkIn, checkOut, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return &Availability{Available: false}, nil
	}

	rt, err := s.roomService.GetTypeByID(ctx, rm.RoomTypeID)
	if err != nil {
		return nil, err
	}

	nights := Nights(checkIn, checkOut)
	return &Availability{
		Available:   true,
		Nights:      nights,
		TotalAmount: rt.PricePerNight * float64(nights),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id string, requesterID string) (*Booking, error) {
	return s.repo.Mutate(ctx, id, func(b *Booking) error {
		if b.UserID != requesterID {
			return ErrPermissionDenied
		}
		// Once an administrator has confirmed the stay, self-service
		// cancellation is no longer offered.
		if b.Status != StatusBooked {
			return ErrNotCancellable
		}
		b.Status = StatusCancelled
		return nil
	})
}

func (s *service) AdvanceStatus(ctx context.Context, id string, next Status) (*Booking, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.Mutate(ctx, id, func(b *Booking) error {
		if !b.Status.CanTransition(next) {
			return ErrInvalidTransition
		}
		b.Status = next
		return nil
	})
}

func (s *service) SetPaymentStatus(ctx context.Context, id string, settled bool) (*Booking, error) {
	return s.repo.Mutate(ctx, id, func(b *Booking) error {
		b.PaymentSettled = settled
		return nil
	})
}
