package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("room not found")
	ErrTypeNotFound      = errors.New("room type not found")
	ErrInvalidStatus     = errors.New("invalid room status")
	ErrNumberTaken       = errors.New("room number already exists for this temple")
	ErrTypeNameTaken     = errors.New("room type name already exists for this temple")
	ErrNonPositivePrice  = errors.New("price per night must be positive")
	ErrTempleRequired    = errors.New("temple_id is required")
	ErrRoomTypeRequired  = errors.New("room_type_id is required")
	ErrRoomNumberMissing = errors.New("room_number is required")
)

// Status is the operational state of a room, counted on the dashboard.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusBooked      Status = "booked"
	StatusMaintenance Status = "maintenance"
	StatusUnavailable Status = "unavailable"
)

// ValidStatuses lists every accepted room status.
var ValidStatuses = []Status{StatusAvailable, StatusBooked, StatusMaintenance, StatusUnavailable}

func (s Status) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Bookable reports whether new stays may be requested for a room in this state.
// Maintenance and unavailable rooms are withdrawn from booking entirely.
func (s Status) Bookable() bool {
	return s == StatusAvailable || s == StatusBooked
}

// RoomType describes a class of rooms within a temple; unique (temple, name).
type RoomType struct {
	ID            string
	TempleID      string
	Name          string
	BedCount      int
	Capacity      int
	PricePerNight float64
	Description   string
	Amenities     *string
	CreatedAt     time.Time
}

// Room is an exclusive bookable unit; unique (temple, room_number).
type Room struct {
	ID         string
	TempleID   string
	TempleName string
	RoomNumber string
	RoomTypeID string
	TypeName   string
	Status     Status
	Floor      int
	Notes      string
	CreatedAt  time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	TempleID string
	Status   string
	Page     int
	PageSize int
}

// StatusCount is one row of the dashboard occupancy block.
type StatusCount struct {
	Status Status
	Count  int
}
