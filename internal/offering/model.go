package offering

import (
	"net/http"
	"time"

	"github.com/templeops/temple-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "offering not found")
	ErrBookingNotFound   = apperror.New(http.StatusNotFound, "offering booking not found")
	ErrInactive          = apperror.New(http.StatusConflict, "offering is not open for booking")
	ErrCapacityReached   = apperror.New(http.StatusConflict, "offering is fully booked for the selected date")
	ErrInvalidKind       = apperror.New(http.StatusBadRequest, "invalid offering kind")
	ErrInvalidPeople     = apperror.New(http.StatusBadRequest, "at least one person is required")
	ErrDateInPast        = apperror.New(http.StatusBadRequest, "booking date cannot be in the past")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrNotCancellable    = apperror.New(http.StatusBadRequest, "offering booking cannot be cancelled in its current state")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "invalid status transition")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid offering booking status")
	ErrNonPositivePrice  = apperror.New(http.StatusBadRequest, "price must not be negative")
)

// Kind classifies a ritual service offered by a temple.
type Kind string

const (
	KindSeva    Kind = "seva"
	KindPooja   Kind = "pooja"
	KindDarshan Kind = "darshan"
)

var Kinds = []Kind{KindSeva, KindPooja, KindDarshan}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of an offering booking.
type Status string

const (
	StatusPending   Status = "pending" // initial state
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses are the states that consume daily capacity.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

var ValidStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether an administrator may move a booking from s
// to next. Forward progress follows pending -> confirmed -> completed;
// cancellation is reachable from any non-terminal state.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusCompleted
	}
	return false
}

// Offering is a bookable ritual service. MaxPerDay of zero means the
// offering has no daily cap.
type Offering struct {
	ID          string
	TempleID    string
	TempleName  string
	Name        string
	Kind        Kind
	Description string
	Price       float64
	MaxPerDay   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Booking reserves an offering for a party on a calendar date.
type Booking struct {
	ID           string
	OfferingID   string
	OfferingName string
	Kind         Kind
	TempleID     string
	UserID       string
	UserName     string
	Date         time.Time
	People       int
	// DevoteeNames are announced during the ritual; optional.
	DevoteeNames   string
	Status         Status
	PaymentSettled bool
	Amount         float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines parameters for listing offerings.
type Filter struct {
	TempleID   string
	Kind       string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// BookingFilter defines parameters for listing offering bookings.
type BookingFilter struct {
	OfferingID string
	UserID     string
	TempleID   string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
	SortOrder  string
}
