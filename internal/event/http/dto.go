package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/event"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
)

type CreateEventRequest struct {
	TempleID    string    `json:"temple_id" binding:"required,uuid"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsActive    *bool      `json:"is_active"`
}

type ListEventsRequest struct {
	request.ListParams
	TempleID     string `form:"temple_id" binding:"omitempty,uuid"`
	UpcomingOnly bool   `form:"upcoming_only"`
	ActiveOnly   bool   `form:"active_only"`
}

type RegisterRequest struct {
	People int `json:"people" binding:"omitempty,min=1"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	TempleID    string    `json:"temple_id"`
	TempleName  string    `json:"temple_name,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewEventResponse(e *event.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		TempleID:    e.TempleID,
		TempleName:  e.TempleName,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}

type RegistrationResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	EventName string    `json:"event_name,omitempty"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	People    int       `json:"people"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRegistrationResponse(r *event.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		EventName: r.EventName,
		UserID:    r.UserID,
		UserName:  r.UserName,
		People:    r.People,
		CreatedAt: r.CreatedAt,
	}
}
