package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/pkg/request"
	"github.com/templeops/temple-booking-backend/internal/room"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	TempleID string `form:"temple_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=available booked maintenance unavailable"`
}

type RoomTypeResponse struct {
	ID            string    `json:"id"`
	TempleID      string    `json:"temple_id"`
	Name          string    `json:"name"`
	BedCount      int       `json:"bed_count"`
	Capacity      int       `json:"capacity"`
	PricePerNight float64   `json:"price_per_night"`
	Description   string    `json:"description"`
	Amenities     *string   `json:"amenities"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewRoomTypeResponse(rt *room.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:            rt.ID,
		TempleID:      rt.TempleID,
		Name:          rt.Name,
		BedCount:      rt.BedCount,
		Capacity:      rt.Capacity,
		PricePerNight: rt.PricePerNight,
		Description:   rt.Description,
		Amenities:     rt.Amenities,
		CreatedAt:     rt.CreatedAt,
	}
}

type RoomResponse struct {
	ID         string    `json:"id"`
	TempleID   string    `json:"temple_id"`
	TempleName string    `json:"temple_name"`
	RoomNumber string    `json:"room_number"`
	RoomTypeID string    `json:"room_type_id"`
	TypeName   string    `json:"type_name"`
	Status     string    `json:"status"`
	Floor      int       `json:"floor"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:         rm.ID,
		TempleID:   rm.TempleID,
		TempleName: rm.TempleName,
		RoomNumber: rm.RoomNumber,
		RoomTypeID: rm.RoomTypeID,
		TypeName:   rm.TypeName,
		Status:     string(rm.Status),
		Floor:      rm.Floor,
		Notes:      rm.Notes,
		CreatedAt:  rm.CreatedAt,
	}
}

type CreateRoomTypeRequest struct {
	TempleID      string  `json:"temple_id" binding:"required,uuid"`
	Name          string  `json:"name" binding:"required"`
	BedCount      int     `json:"bed_count" binding:"omitempty,min=1"`
	Capacity      int     `json:"capacity" binding:"omitempty,min=1"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	Description   string  `json:"description"`
	Amenities     *string `json:"amenities"`
}

type CreateRoomRequest struct {
	TempleID   string `json:"temple_id" binding:"required,uuid"`
	RoomNumber string `json:"room_number" binding:"required"`
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
	Floor      int    `json:"floor" binding:"omitempty,min=1"`
	Notes      string `json:"notes"`
}

type SetRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available booked maintenance unavailable"`
}
