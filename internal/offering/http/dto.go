package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/offering"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

type CreateOfferingRequest struct {
	TempleID    string  `json:"temple_id" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required"`
	Kind        string  `json:"kind" binding:"required,oneof=seva pooja darshan"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"omitempty,min=0"`
	MaxPerDay   int     `json:"max_per_day" binding:"omitempty,min=0"`
}

type UpdateOfferingRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	MaxPerDay   *int     `json:"max_per_day" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active"`
}

type ListOfferingsRequest struct {
	request.ListParams
	TempleID   string `form:"temple_id" binding:"omitempty,uuid"`
	Kind       string `form:"kind" binding:"omitempty,oneof=seva pooja darshan"`
	ActiveOnly bool   `form:"active_only"`
}

type BookOfferingRequest struct {
	OfferingID   string `json:"offering_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	People       int    `json:"people" binding:"required,min=1"`
	DevoteeNames string `json:"devotee_names"`
}

type ListOfferingBookingsRequest struct {
	request.ListParams
	OfferingID string `form:"offering_id" binding:"omitempty,uuid"`
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
	TempleID   string `form:"temple_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

type AdvanceBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

type SetPaymentRequest struct {
	Settled *bool `json:"settled" binding:"required"`
}

type OfferingResponse struct {
	ID          string    `json:"id"`
	TempleID    string    `json:"temple_id"`
	TempleName  string    `json:"temple_name,omitempty"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	MaxPerDay   int       `json:"max_per_day"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewOfferingResponse(o *offering.Offering) OfferingResponse {
	return OfferingResponse{
		ID:          o.ID,
		TempleID:    o.TempleID,
		TempleName:  o.TempleName,
		Name:        o.Name,
		Kind:        string(o.Kind),
		Description: o.Description,
		Price:       o.Price,
		MaxPerDay:   o.MaxPerDay,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type BookingResponse struct {
	ID             string    `json:"id"`
	OfferingID     string    `json:"offering_id"`
	OfferingName   string    `json:"offering_name,omitempty"`
	Kind           string    `json:"kind,omitempty"`
	TempleID       string    `json:"temple_id,omitempty"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	Date           string    `json:"date"`
	People         int       `json:"people"`
	DevoteeNames   string    `json:"devotee_names,omitempty"`
	Status         string    `json:"status"`
	PaymentSettled bool      `json:"payment_settled"`
	Amount         float64   `json:"amount"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewBookingResponse(b *offering.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		OfferingID:     b.OfferingID,
		OfferingName:   b.OfferingName,
		Kind:           string(b.Kind),
		TempleID:       b.TempleID,
		UserID:         b.UserID,
		UserName:       b.UserName,
		Date:           b.Date.Format(dateLayout),
		People:         b.People,
		DevoteeNames:   b.DevoteeNames,
		Status:         string(b.Status),
		PaymentSettled: b.PaymentSettled,
		Amount:         b.Amount,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
