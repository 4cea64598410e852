package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/templeops/temple-booking-backend/internal/api"
	"github.com/templeops/temple-booking-backend/internal/auth"
	"github.com/templeops/temple-booking-backend/internal/booking"
	"github.com/templeops/temple-booking-backend/internal/donation"
	"github.com/templeops/temple-booking-backend/internal/event"
	"github.com/templeops/temple-booking-backend/internal/festival"
	"github.com/templeops/temple-booking-backend/internal/jobs"
	"github.com/templeops/temple-booking-backend/internal/offering"
	"github.com/templeops/temple-booking-backend/internal/room"
	"github.com/templeops/temple-booking-backend/internal/stats"
	"github.com/templeops/temple-booking-backend/internal/temple"
	"github.com/templeops/temple-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	CatalogCacheTTL         time.Duration
	BookingRatePerMin       int
	EnforceOfferingCapacity bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	Scheduler  *jobs.Scheduler
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Temple Module
	templeRepo := temple.NewPgxRepository(cfg.DBPool)
	templeService := temple.NewService(templeRepo)

	// Room Module
	roomTypeRepo := room.NewPgxTypeRepository(cfg.DBPool)
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, roomTypeRepo, templeService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService)

	// Offering Module
	offeringRepo := offering.NewPgxRepository(cfg.DBPool)
	offeringService := offering.NewService(offeringRepo, templeService, cfg.EnforceOfferingCapacity)

	// Event Module
	eventRepo := event.NewPgxRepository(cfg.DBPool)
	eventService := event.NewService(eventRepo, templeService)

	// Festival Module
	festivalRepo := festival.NewPgxRepository(cfg.DBPool)
	festivalService := festival.NewService(festivalRepo, templeService)

	// Donation Module
	donationRepo := donation.NewPgxRepository(cfg.DBPool)
	donationService := donation.NewService(donationRepo, templeService)

	// Stats Module
	statsRepo := stats.NewPgxRepository(cfg.DBPool)
	statsService := stats.NewService(statsRepo, bookingService, donationService, eventService, festivalService, roomService)

	// Background jobs
	scheduler := jobs.NewScheduler(festivalService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		CatalogCacheTTL:   cfg.CatalogCacheTTL,
		BookingRatePerMin: cfg.BookingRatePerMin,
		UserService:       userService,
		TempleService:     templeService,
		RoomService:       roomService,
		BookingService:    bookingService,
		OfferingService:   offeringService,
		EventService:      eventService,
		FestivalService:   festivalService,
		DonationService:   donationService,
		StatsService:      statsService,
		JWTManager:        jwtManager,
	})

	return &Container{
		Router:     router,
		Scheduler:  scheduler,
		JWTManager: jwtManager,
	}
}
