package event

import (
	"context"
	"time"

	"github.com/templeops/temple-booking-backend/internal/temple"
)

type CreateRequest struct {
	TempleID    string
	Name        string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Location    *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Event, error)
	Upcoming(ctx context.Context, limit int) ([]*Event, error)

	// Register signs the user up for an active event that has not ended.
	Register(ctx context.Context, eventID, userID string, people int) (*Registration, error)
	ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]*Registration, error)
}

type service struct {
	repo          Repository
	templeService temple.Service
	now           func() time.Time
}

func NewService(repo Repository, templeService temple.Service) Service {
	return &service{
		repo:          repo,
		templeService: templeService,
		now:           time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Event, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, ErrInvalidSchedule
	}
	if _, err := s.templeService.GetByID(ctx, req.TempleID); err != nil {
		return nil, err
	}

	e := &Event{
		TempleID:    req.TempleID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.StartsAt != nil {
		e.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		e.EndsAt = *req.EndsAt
	}
	if !e.EndsAt.After(e.StartsAt) {
		return nil, ErrInvalidSchedule
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Upcoming(ctx context.Context, limit int) ([]*Event, error) {
	if limit < 1 {
		limit = 5
	}
	return s.repo.Upcoming(ctx, s.now(), limit)
}

func (s *service) Register(ctx context.Context, eventID, userID string, people int) (*Registration, error) {
	if people < 1 {
		return nil, ErrInvalidPeople
	}

	e, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !e.IsActive {
		return nil, ErrInactive
	}
	if e.Over(s.now()) {
		return nil, ErrEventOver
	}

	reg := &Registration{
		EventID: eventID,
		UserID:  userID,
		People:  people,
	}
	if err := s.repo.Register(ctx, reg); err != nil {
		return nil, err
	}
	reg.EventName = e.Name
	return reg, nil
}

func (s *service) ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error) {
	return s.repo.ListRegistrations(ctx, eventID)
}

func (s *service) ListUserRegistrations(ctx context.Context, userID string) ([]*Registration, error) {
	return s.repo.ListUserRegistrations(ctx, userID)
}
