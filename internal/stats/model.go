package stats

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/booking"
	"github.com/templeops/temple-booking-backend/internal/donation"
	"github.com/templeops/temple-booking-backend/internal/event"
	"github.com/templeops/temple-booking-backend/internal/festival"
	"github.com/templeops/temple-booking-backend/internal/room"
)

// Totals are all-time counters across the whole system.
type Totals struct {
	Temples            int
	Users              int
	Rooms              int
	RoomBookings       int
	RoomBookingAmount  float64
	FestivalBookings   int
	EventRegistrations int
	Donations          int
	DonationAmount     float64
}

// KindTotal is the all-time booking count and revenue for one offering kind.
type KindTotal struct {
	Kind     string
	Bookings int
	Amount   float64
}

// Window covers activity inside the lookback period.
type Window struct {
	Days             int
	NewBookings      int
	BookingRevenue   float64
	DonationAmount   float64
	NewRegistrations int
}

// PopularOffering ranks an offering by how often it was booked.
type PopularOffering struct {
	OfferingID string
	Name       string
	Kind       string
	Bookings   int
	People     int
}

// Snapshot is the admin dashboard payload. Building one reads state but
// never writes it; two snapshots over unchanged data are identical apart
// from GeneratedAt.
type Snapshot struct {
	GeneratedAt       time.Time
	Totals            Totals
	OfferingTotals    []KindTotal
	Window            Window
	RoomStatus        []room.StatusCount
	RecentBookings    []*booking.Booking
	RecentDonations   []*donation.Donation
	UpcomingEvents    []*event.Event
	UpcomingFestivals []*festival.Festival
	PopularSevas      []PopularOffering
	PopularPoojas     []PopularOffering
}
