package booking

import (
	"net/http"
	"time"

	"github.com/templeops/temple-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound     = apperror.New(http.StatusNotFound, "room not found")
	ErrDateConflict     = apperror.New(http.StatusConflict, "room is already booked for the selected dates")
	ErrRoomClosed       = apperror.New(http.StatusConflict, "room is not open for booking")
	ErrInvalidStayRange = apperror.New(http.StatusBadRequest, "check-out date must be after check-in date")
	ErrInvalidPartySize = apperror.New(http.StatusBadRequest, "at least one adult is required")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrNotCancellable   = apperror.New(http.StatusBadRequest, "booking cannot be cancelled in its current state")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "invalid status transition")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
)

// Status is the lifecycle state of a room booking.
type Status string

const (
	StatusBooked     Status = "booked" // initial state for room stays
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// ActiveStatuses are the states counted toward conflict detection.
// A cancelled or checked-out stay releases its dates.
var ActiveStatuses = []Status{StatusBooked, StatusConfirmed, StatusCheckedIn}

// ValidStatuses lists every accepted booking status.
var ValidStatuses = []Status{StatusBooked, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCheckedOut
}

// CanTransition reports whether an administrator may move a booking
// from s to next. Cancellation is reachable from any non-terminal state;
// forward progress follows booked -> confirmed -> checked_in -> checked_out.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusBooked:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusCheckedIn
	case StatusCheckedIn:
		return next == StatusCheckedOut
	}
	return false
}

// Booking is a claim on a room for the half-open date range [CheckIn, CheckOut).
type Booking struct {
	ID         string
	UserID     string
	UserName   string
	RoomID     string
	RoomNumber string
	TempleID   string
	TempleName string
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	Requests   string
	Status     Status
	// PaymentSettled is an independent dimension; it never drives Status.
	PaymentSettled bool
	TotalAmount    float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Nights returns the number of chargeable nights in the stay.
func (b *Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// Nights computes chargeable nights for a half-open date range.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Overlaps reports whether two half-open date ranges intersect:
// [a1,a2) and [b1,b2) overlap iff a1 < b2 AND b1 < a2.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	RoomID   string
	TempleID string
	Status   string
	// CheckInFrom/CheckInTo bound the check-in date.
	CheckInFrom *time.Time
	CheckInTo   *time.Time
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
