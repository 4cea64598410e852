package festival

import (
	"net/http"
	"time"

	"github.com/templeops/temple-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "festival not found")
	ErrBookingNotFound   = apperror.New(http.StatusNotFound, "festival booking not found")
	ErrInvalidSchedule   = apperror.New(http.StatusBadRequest, "festival end date must not be before its start date")
	ErrClosed            = apperror.New(http.StatusConflict, "festival is not open for booking")
	ErrAlreadyCancelled  = apperror.New(http.StatusBadRequest, "festival is already cancelled")
	ErrInvalidPeople     = apperror.New(http.StatusBadRequest, "at least one person is required")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrNotCancellable    = apperror.New(http.StatusBadRequest, "festival booking cannot be cancelled in its current state")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "invalid status transition")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid festival booking status")
)

// Status tracks where a festival sits relative to its dates. It is derived
// from the calendar, not set by hand; the daily roller keeps it current.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled" // set by admins; the roller never touches it
)

// Bookable reports whether devotees may still book a spot.
func (s Status) Bookable() bool {
	return s == StatusUpcoming || s == StatusOngoing
}

// StatusFor computes the status a festival should carry on the given day.
// Both bounds are inclusive calendar dates.
func StatusFor(startDate, endDate, today time.Time) Status {
	if today.Before(startDate) {
		return StatusUpcoming
	}
	if today.After(endDate) {
		return StatusCompleted
	}
	return StatusOngoing
}

// Festival is a multi-day celebration spanning [StartDate, EndDate],
// inclusive on both ends unlike room stays.
type Festival struct {
	ID          string
	TempleID    string
	TempleName  string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	// ExpectedAttendance is an organizer estimate, not a booking cap.
	ExpectedAttendance int
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Filter defines parameters for listing festivals.
type Filter struct {
	TempleID string
	Status   string
	Page     int
	PageSize int
}

// BookingStatus is the lifecycle state of a festival booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending" // initial state
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

var ValidBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled}

func (s BookingStatus) Valid() bool {
	for _, v := range ValidBookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether an administrator may move a booking from s
// to next. Forward progress is pending -> confirmed; cancellation is
// reachable from either, and cancelled is terminal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s == BookingCancelled {
		return false
	}
	if next == BookingCancelled {
		return true
	}
	return s == BookingPending && next == BookingConfirmed
}

// Booking reserves a spot at a festival. Festivals carry no price, so
// bookings have no amount or payment flag.
type Booking struct {
	ID           string
	FestivalID   string
	FestivalName string
	TempleID     string
	UserID       string
	UserName     string
	People       int
	Notes        string
	Status       BookingStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BookingFilter defines parameters for listing festival bookings.
type BookingFilter struct {
	FestivalID string
	UserID     string
	TempleID   string
	Status     string
	Page       int
	PageSize   int
	SortOrder  string
}
