package donation

import (
	"net/http"
	"time"

	"github.com/templeops/temple-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "donation not found")
	ErrNonPositive      = apperror.New(http.StatusBadRequest, "donation amount must be greater than zero")
	ErrTempleRequired   = apperror.New(http.StatusBadRequest, "temple is required")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Donation is a voluntary contribution. UserID is nil for anonymous
// donations and for donations whose donor account was removed.
type Donation struct {
	ID         string
	TempleID   string
	TempleName string
	UserID     *string
	DonorName  string
	Purpose    string
	Amount     float64
	Note       string
	CreatedAt  time.Time
}

// Filter defines parameters for listing donations.
type Filter struct {
	TempleID string
	UserID   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
