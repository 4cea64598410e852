package http

import (
	"time"

	"github.com/templeops/temple-booking-backend/internal/stats"
)

const dateLayout = "2006-01-02"

type DashboardRequest struct {
	LookbackDays int `form:"lookback_days" binding:"omitempty,min=1,max=365"`
}

type TotalsResponse struct {
	Temples            int     `json:"temples"`
	Users              int     `json:"users"`
	Rooms              int     `json:"rooms"`
	RoomBookings       int     `json:"room_bookings"`
	RoomBookingAmount  float64 `json:"room_booking_amount"`
	FestivalBookings   int     `json:"festival_bookings"`
	EventRegistrations int     `json:"event_registrations"`
	Donations          int     `json:"donations"`
	DonationAmount     float64 `json:"donation_amount"`
}

type KindTotalResponse struct {
	Kind     string  `json:"kind"`
	Bookings int     `json:"bookings"`
	Amount   float64 `json:"amount"`
}

type WindowResponse struct {
	Days             int     `json:"days"`
	NewBookings      int     `json:"new_bookings"`
	BookingRevenue   float64 `json:"booking_revenue"`
	DonationAmount   float64 `json:"donation_amount"`
	NewRegistrations int     `json:"new_registrations"`
}

type RoomStatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RecentBookingResponse struct {
	ID          string    `json:"id"`
	UserName    string    `json:"user_name,omitempty"`
	RoomNumber  string    `json:"room_number,omitempty"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecentDonationResponse struct {
	ID        string    `json:"id"`
	DonorName string    `json:"donor_name"`
	Amount    float64   `json:"amount"`
	Purpose   string    `json:"purpose,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UpcomingEventResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
	Location string    `json:"location,omitempty"`
}

type UpcomingFestivalResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type PopularOfferingResponse struct {
	OfferingID string `json:"offering_id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Bookings   int    `json:"bookings"`
	People     int    `json:"people"`
}

type DashboardResponse struct {
	GeneratedAt       time.Time                  `json:"generated_at"`
	Totals            TotalsResponse             `json:"totals"`
	OfferingTotals    []KindTotalResponse        `json:"offering_totals"`
	Window            WindowResponse             `json:"window"`
	RoomStatus        []RoomStatusCountResponse  `json:"room_status"`
	RecentBookings    []RecentBookingResponse    `json:"recent_bookings"`
	RecentDonations   []RecentDonationResponse   `json:"recent_donations"`
	UpcomingEvents    []UpcomingEventResponse    `json:"upcoming_events"`
	UpcomingFestivals []UpcomingFestivalResponse `json:"upcoming_festivals"`
	PopularSevas      []PopularOfferingResponse  `json:"popular_sevas"`
	PopularPoojas     []PopularOfferingResponse  `json:"popular_poojas"`
}

func newPopularResponses(popular []stats.PopularOffering) []PopularOfferingResponse {
	out := make([]PopularOfferingResponse, len(popular))
	for i, p := range popular {
		out[i] = PopularOfferingResponse{
			OfferingID: p.OfferingID,
			Name:       p.Name,
			Kind:       p.Kind,
			Bookings:   p.Bookings,
			People:     p.People,
		}
	}
	return out
}

func NewDashboardResponse(s *stats.Snapshot) DashboardResponse {
	resp := DashboardResponse{
		GeneratedAt: s.GeneratedAt,
		Totals: TotalsResponse{
			Temples:            s.Totals.Temples,
			Users:              s.Totals.Users,
			Rooms:              s.Totals.Rooms,
			RoomBookings:       s.Totals.RoomBookings,
			RoomBookingAmount:  s.Totals.RoomBookingAmount,
			FestivalBookings:   s.Totals.FestivalBookings,
			EventRegistrations: s.Totals.EventRegistrations,
			Donations:          s.Totals.Donations,
			DonationAmount:     s.Totals.DonationAmount,
		},
		Window: WindowResponse{
			Days:             s.Window.Days,
			NewBookings:      s.Window.NewBookings,
			BookingRevenue:   s.Window.BookingRevenue,
			DonationAmount:   s.Window.DonationAmount,
			NewRegistrations: s.Window.NewRegistrations,
		},
		OfferingTotals:    make([]KindTotalResponse, len(s.OfferingTotals)),
		RoomStatus:        make([]RoomStatusCountResponse, len(s.RoomStatus)),
		RecentBookings:    make([]RecentBookingResponse, len(s.RecentBookings)),
		RecentDonations:   make([]RecentDonationResponse, len(s.RecentDonations)),
		UpcomingEvents:    make([]UpcomingEventResponse, len(s.UpcomingEvents)),
		UpcomingFestivals: make([]UpcomingFestivalResponse, len(s.UpcomingFestivals)),
		PopularSevas:      newPopularResponses(s.PopularSevas),
		PopularPoojas:     newPopularResponses(s.PopularPoojas),
	}

	for i, kt := range s.OfferingTotals {
		resp.OfferingTotals[i] = KindTotalResponse{Kind: kt.Kind, Bookings: kt.Bookings, Amount: kt.Amount}
	}
	for i, sc := range s.RoomStatus {
		resp.RoomStatus[i] = RoomStatusCountResponse{Status: string(sc.Status), Count: sc.Count}
	}
	for i, b := range s.RecentBookings {
		resp.RecentBookings[i] = RecentBookingResponse{
			ID:          b.ID,
			UserName:    b.UserName,
			RoomNumber:  b.RoomNumber,
			CheckIn:     b.CheckIn.Format(dateLayout),
			CheckOut:    b.CheckOut.Format(dateLayout),
			Status:      string(b.Status),
			TotalAmount: b.TotalAmount,
			CreatedAt:   b.CreatedAt,
		}
	}
	for i, d := range s.RecentDonations {
		resp.RecentDonations[i] = RecentDonationResponse{
			ID:        d.ID,
			DonorName: d.DonorName,
			Amount:    d.Amount,
			Purpose:   d.Purpose,
			CreatedAt: d.CreatedAt,
		}
	}
	for i, e := range s.UpcomingEvents {
		resp.UpcomingEvents[i] = UpcomingEventResponse{
			ID:       e.ID,
			Name:     e.Name,
			StartsAt: e.StartsAt,
			Location: e.Location,
		}
	}
	for i, f := range s.UpcomingFestivals {
		resp.UpcomingFestivals[i] = UpcomingFestivalResponse{
			ID:        f.ID,
			Name:      f.Name,
			StartDate: f.StartDate.Format(dateLayout),
			EndDate:   f.EndDate.Format(dateLayout),
			Status:    string(f.Status),
		}
	}

	return resp
}
