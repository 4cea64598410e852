package room

import (
	"context"
	"strings"

	"github.com/templeops/temple-booking-backend/internal/temple"
)

type CreateTypeRequest struct {
	TempleID      string
	Name          string
	BedCount      int
	Capacity      int
	PricePerNight float64
	Description   string
	Amenities     *string
}

type CreateRequest struct {
	TempleID   string
	RoomNumber string
	RoomTypeID string
	Floor      int
	Notes      string
}

type Service interface {
	CreateType(ctx context.Context, req CreateTypeRequest) (*RoomType, error)
	GetTypeByID(ctx context.Context, id string) (*RoomType, error)
	ListTypes(ctx context.Context, templeID string) ([]*RoomType, error)

	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	SetStatus(ctx context.Context, id string, status Status) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type service struct {
	repo          Repository
	typeRepo      TypeRepository
	templeService temple.Service
}

func NewService(repo Repository, typeRepo TypeRepository, templeService temple.Service) Service {
	return &service{
		repo:          repo,
		typeRepo:      typeRepo,
		templeService: templeService,
	}
}

func (s *service) CreateType(ctx context.Context, req CreateTypeRequest) (*RoomType, error) {
	if req.TempleID == "" {
		return nil, ErrTempleRequired
	}
	if req.PricePerNight <= 0 {
		return nil, ErrNonPositivePrice
	}

	if _, err := s.templeService.GetByID(ctx, req.TempleID); err != nil {
		return nil, err
	}

	rt := &RoomType{
		TempleID:      req.TempleID,
		Name:          req.Name,
		BedCount:      req.BedCount,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Description:   req.Description,
		Amenities:     req.Amenities,
	}
	if rt.BedCount < 1 {
		rt.BedCount = 1
	}
	if rt.Capacity < 1 {
		rt.Capacity = 2
	}

	if err := s.typeRepo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetTypeByID(ctx context.Context, id string) (*RoomType, error) {
	return s.typeRepo.GetByID(ctx, id)
}

func (s *service) ListTypes(ctx context.Context, templeID string) ([]*RoomType, error) {
	return s.typeRepo.ListByTemple(ctx, templeID)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if req.TempleID == "" {
		return nil, ErrTempleRequired
	}
	if strings.TrimSpace(req.RoomNumber) == "" {
		return nil, ErrRoomNumberMissing
	}
	if req.RoomTypeID == "" {
		return nil, ErrRoomTypeRequired
	}

	rt, err := s.typeRepo.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		return nil, err
	}
	// Room types cannot be shared across temples.
	if rt.TempleID != req.TempleID {
		return nil, ErrRoomTypeRequired
	}

	rm := &Room{
		TempleID:   req.TempleID,
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Status:     StatusAvailable,
		Floor:      req.Floor,
		Notes:      req.Notes,
	}
	if rm.Floor < 1 {
		rm.Floor = 1
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	return s.repo.CountByStatus(ctx)
}
