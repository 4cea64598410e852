package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/festival"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

type CreateFestivalRequest struct {
	TempleID           string `json:"temple_id" binding:"required,uuid"`
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description"`
	StartDate          string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate            string `json:"end_date" binding:"required,datetime=2006-01-02"`
	ExpectedAttendance int    `json:"expected_attendance" binding:"omitempty,min=0"`
}

type UpdateFestivalRequest struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	StartDate          *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate            *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	ExpectedAttendance *int    `json:"expected_attendance" binding:"omitempty,min=0"`
}

type ListFestivalsRequest struct {
	request.ListParams
	TempleID string `form:"temple_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

type FestivalResponse struct {
	ID                 string    `json:"id"`
	TempleID           string    `json:"temple_id"`
	TempleName         string    `json:"temple_name,omitempty"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	ExpectedAttendance int       `json:"expected_attendance"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewFestivalResponse(f *festival.Festival) FestivalResponse {
	return FestivalResponse{
		ID:                 f.ID,
		TempleID:           f.TempleID,
		TempleName:         f.TempleName,
		Name:               f.Name,
		Description:        f.Description,
		StartDate:          f.StartDate.Format(dateLayout),
		EndDate:            f.EndDate.Format(dateLayout),
		ExpectedAttendance: f.ExpectedAttendance,
		Status:             string(f.Status),
		CreatedAt:          f.CreatedAt,
	}
}

type BookFestivalRequest struct {
	FestivalID string `json:"festival_id" binding:"required,uuid"`
	People     int    `json:"people" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

type ListFestivalBookingsRequest struct {
	request.ListParams
	FestivalID string `form:"festival_id" binding:"omitempty,uuid"`
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
	TempleID   string `form:"temple_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

type AdvanceBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	FestivalID   string    `json:"festival_id"`
	FestivalName string    `json:"festival_name,omitempty"`
	TempleID     string    `json:"temple_id,omitempty"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	People       int       `json:"people"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookingResponse(b *festival.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		FestivalID:   b.FestivalID,
		FestivalName: b.FestivalName,
		TempleID:     b.TempleID,
		UserID:       b.UserID,
		UserName:     b.UserName,
		People:       b.People,
		Notes:        b.Notes,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
