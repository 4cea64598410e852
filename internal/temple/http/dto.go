package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/pkg/request"
	"github.com/templeops/temple-booking-backend/internal/temple"
)

// ListTemplesRequest defines query parameters for listing temples.
type ListTemplesRequest struct {
	request.ListParams
	Search string `form:"search"`
}

type TempleResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	Description     string     `json:"description"`
	EstablishedDate *time.Time `json:"established_date"`
	ContactNumber   *string    `json:"contact_number"`
	Email           *string    `json:"email"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewTempleResponse(t *temple.Temple) TempleResponse {
	return TempleResponse{
		ID:              t.ID,
		Name:            t.Name,
		Location:        t.Location,
		Description:     t.Description,
		EstablishedDate: t.EstablishedDate,
		ContactNumber:   t.ContactNumber,
		Email:           t.Email,
		CreatedAt:       t.CreatedAt,
	}
}

type CreateTempleRequest struct {
	Name            string     `json:"name" binding:"required"`
	Location        string     `json:"location" binding:"required"`
	Description     string     `json:"description"`
	EstablishedDate *time.Time `json:"established_date"`
	ContactNumber   *string    `json:"contact_number"`
	Email           *string    `json:"email" binding:"omitempty,email"`
}

type UpdateTempleRequest struct {
	Name            *string    `json:"name"`
	Location        *string    `json:"location"`
	Description     *string    `json:"description"`
	EstablishedDate *time.Time `json:"established_date"`
	ContactNumber   *string    `json:"contact_number"`
	Email           *string    `json:"email" binding:"omitempty,email"`
}
