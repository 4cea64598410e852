package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/donation"
	"github.com/templeops/temple-booking-backend/internal/pkg/request"
)

type CreateDonationRequest struct {
	TempleID  string  `json:"temple_id" binding:"required,uuid"`
	DonorName string  `json:"donor_name"`
	Purpose   string  `json:"purpose"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Note      string  `json:"note"`
	Anonymous bool    `json:"anonymous"`
}

type ListDonationsRequest struct {
	request.ListParams
	TempleID string `form:"temple_id" binding:"omitempty,uuid"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type DonationResponse struct {
	ID         string    `json:"id"`
	TempleID   string    `json:"temple_id"`
	TempleName string    `json:"temple_name,omitempty"`
	UserID     *string   `json:"user_id,omitempty"`
	DonorName  string    `json:"donor_name"`
	Purpose    string    `json:"purpose"`
	Amount     float64   `json:"amount"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewDonationResponse(d *donation.Donation) DonationResponse {
	return DonationResponse{
		ID:         d.ID,
		TempleID:   d.TempleID,
		TempleName: d.TempleName,
		UserID:     d.UserID,
		DonorName:  d.DonorName,
		Purpose:    d.Purpose,
		Amount:     d.Amount,
		Note:       d.Note,
		CreatedAt:  d.CreatedAt,
	}
}
