package donation

import (
	"context"
	"strings"

	"github.com/templeops/temple-booking-backend/internal/temple"
)

type CreateRequest struct {
	TempleID  string
	UserID    string
	DonorName string
	Purpose   string
	Amount    float64
	Note      string
	Anonymous bool
}

type Service interface {
	// Create records a donation. Anonymous donations carry no user link
	// and show "Anonymous" as donor.
	Create(ctx context.Context, req CreateRequest) (*Donation, error)

	GetByID(ctx context.Context, id string, requesterID string, isAdmin bool) (*Donation, error)
	List(ctx context.Context, filter Filter) ([]*Donation, int, error)
}

type service struct {
	repo          Repository
	templeService temple.Service
}

func NewService(repo Repository, templeService temple.Service) Service {
	return &service{
		repo:          repo,
		templeService: templeService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Donation, error) {
	if req.Amount <= 0 {
		return nil, ErrNonPositive
	}
	if req.TempleID == "" {
		return nil, ErrTempleRequired
	}
	if _, err := s.templeService.GetByID(ctx, req.TempleID); err != nil {
		return nil, err
	}

	d := &Donation{
		TempleID:  req.TempleID,
		DonorName: strings.TrimSpace(req.DonorName),
		Purpose:   req.Purpose,
		Amount:    req.Amount,
		Note:      req.Note,
	}
	if req.Anonymous {
		d.DonorName = "Anonymous"
	} else if req.UserID != "" {
		uid := req.UserID
		d.UserID = &uid
	}
	if d.DonorName == "" {
		d.DonorName = "Anonymous"
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id string, requesterID string, isAdmin bool) (*Donation, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && (d.UserID == nil || *d.UserID != requesterID) {
		return nil, ErrPermissionDenied
	}
	return d, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Donation, int, error) {
	return s.repo.List(ctx, filter)
}
