package temple

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	Name            string
	Location        string
	Description     string
	EstablishedDate *time.Time
	ContactNumber   *string
	Email           *string
}

type UpdateRequest struct {
	Name            *string
	Location        *string
	Description     *string
	EstablishedDate *time.Time
	ContactNumber   *string
	Email           *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Temple, error)
	GetByID(ctx context.Context, id string) (*Temple, error)
	List(ctx context.Context, filter Filter) ([]*Temple, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Temple, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Temple, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, ErrLocRequired
	}

	t := &Temple{
		Name:            req.Name,
		Location:        req.Location,
		Description:     req.Description,
		EstablishedDate: req.EstablishedDate,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Temple, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Temple, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Temple, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		t.Name = *req.Name
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			return nil, ErrLocRequired
		}
		t.Location = *req.Location
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.EstablishedDate != nil {
		t.EstablishedDate = req.EstablishedDate
	}
	if req.ContactNumber != nil {
		t.ContactNumber = req.ContactNumber
	}
	if req.Email != nil {
		t.Email = req.Email
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
