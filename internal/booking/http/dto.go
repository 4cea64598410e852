package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/booking"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	RoomID   string `json:"room_id" binding:"required,uuid"`
	CheckIn  string `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" binding:"required,datetime=2006-01-02"`
	Adults   int    `json:"adults" binding:"required,min=1"`
	Children int    `json:"children" binding:"omitempty,min=0"`
	Requests string `json:"special_requests"`
}

type AvailabilityRequest struct {
	RoomID   string `form:"room_id" binding:"required,uuid"`
	CheckIn  string `form:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string `form:"check_out" binding:"required,datetime=2006-01-02"`
}

type ListBookingsRequest struct {
	request.ListParams
	RoomID      string `form:"room_id" binding:"omitempty,uuid"`
	TempleID    string `form:"temple_id" binding:"omitempty,uuid"`
	UserID      string `form:"user_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=booked confirmed checked_in checked_out cancelled"`
	CheckInFrom string `form:"check_in_from" binding:"omitempty,datetime=2006-01-02"`
	CheckInTo   string `form:"check_in_to" binding:"omitempty,datetime=2006-01-02"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=created_at check_in total_amount"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed checked_in checked_out cancelled"`
}

type SetPaymentRequest struct {
	Settled *bool `json:"settled" binding:"required"`
}

type AvailabilityResponse struct {
	Available   bool    `json:"available"`
	Nights      int     `json:"nights,omitempty"`
	TotalAmount float64 `json:"total_amount,omitempty"`
}

type BookingResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	RoomID         string    `json:"room_id"`
	RoomNumber     string    `json:"room_number,omitempty"`
	TempleID       string    `json:"temple_id,omitempty"`
	TempleName     string    `json:"temple_name,omitempty"`
	CheckIn        string    `json:"check_in"`
	CheckOut       string    `json:"check_out"`
	Nights         int       `json:"nights"`
	Adults         int       `json:"adults"`
	Children       int       `json:"children"`
	Requests       string    `json:"special_requests,omitempty"`
	Status         string    `json:"status"`
	PaymentSettled bool      `json:"payment_settled"`
	TotalAmount    float64   `json:"total_amount"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		UserName:       b.UserName,
		RoomID:         b.RoomID,
		RoomNumber:     b.RoomNumber,
		TempleID:       b.TempleID,
		TempleName:     b.TempleName,
		CheckIn:        b.CheckIn.Format(dateLayout),
		CheckOut:       b.CheckOut.Format(dateLayout),
		Nights:         b.Nights(),
		Adults:         b.Adults,
		Children:       b.Children,
		Requests:       b.Requests,
		Status:         string(b.Status),
		PaymentSettled: b.PaymentSettled,
		TotalAmount:    b.TotalAmount,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
