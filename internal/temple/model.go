package temple

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("temple not found")
	ErrNameRequired = errors.New("name is required")
	ErrLocRequired  = errors.New("location is required")
)

// Temple is the owning entity for rooms, offerings, events, festivals and donations.
type Temple struct {
	ID              string
	Name            string
	Location        string
	Description     string
	EstablishedDate *time.Time
	ContactNumber   *string
	Email           *string
	CreatedAt       time.Time
}

// Filter defines parameters for listing temples.
type Filter struct {
	// Keyword matches name, location and description.
	Keyword  string
	Page     int
	PageSize int
}
