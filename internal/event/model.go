package event

import (
	"net/http"
	"time"

	"github.com/templeops/temple-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "event not found")
	ErrInactive          = apperror.New(http.StatusConflict, "event is not open for registration")
	ErrEventOver         = apperror.New(http.StatusConflict, "event has already ended")
	ErrAlreadyRegistered = apperror.New(http.StatusConflict, "already registered for this event")
	ErrInvalidSchedule   = apperror.New(http.StatusBadRequest, "event end must be after its start")
	ErrInvalidPeople     = apperror.New(http.StatusBadRequest, "at least one attendee is required")
)

// Event is a scheduled temple happening devotees can register for.
type Event struct {
	ID          string
	TempleID    string
	TempleName  string
	Name        string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Over reports whether the event has ended as of now.
func (e *Event) Over(now time.Time) bool {
	return !e.EndsAt.After(now)
}

// Registration records a devotee's attendance claim on an event.
type Registration struct {
	ID        string
	EventID   string
	EventName string
	UserID    string
	UserName  string
	People    int
	CreatedAt time.Time
}

// Filter defines parameters for listing events.
type Filter struct {
	TempleID     string
	UpcomingOnly bool
	ActiveOnly   bool
	Page         int
	PageSize     int
}
