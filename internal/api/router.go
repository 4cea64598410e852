package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/templeops/temple-booking-backend/internal/auth"
	"github.com/templeops/temple-booking-backend/internal/booking"
	bookingHttp "github.com/templeops/temple-booking-backend/internal/booking/http"
	"github.com/templeops/temple-booking-backend/internal/donation"
	donationHttp "github.com/templeops/temple-booking-backend/internal/donation/http"
	"github.com/templeops/temple-booking-backend/internal/event"
	eventHttp "github.com/templeops/temple-booking-backend/internal/event/http"
	"github.com/templeops/temple-booking-backend/internal/festival"
	festivalHttp "github.com/templeops/temple-booking-backend/internal/festival/http"
	"github.com/templeops/temple-booking-backend/internal/mw"
	"github.com/templeops/temple-booking-backend/internal/offering"
	offeringHttp "github.com/templeops/temple-booking-backend/internal/offering/http"
	"github.com/templeops/temple-booking-backend/internal/room"
	roomHttp "github.com/templeops/temple-booking-backend/internal/room/http"
	"github.com/templeops/temple-booking-backend/internal/stats"
	statsHttp "github.com/templeops/temple-booking-backend/internal/stats/http"
	"github.com/templeops/temple-booking-backend/internal/temple"
	templeHttp "github.com/templeops/temple-booking-backend/internal/temple/http"
	"github.com/templeops/temple-booking-backend/internal/user"
	userHttp "github.com/templeops/temple-booking-backend/internal/user/http"
)

// Config carries everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	CatalogCacheTTL   time.Duration
	BookingRatePerMin int

	UserService     user.Service
	TempleService   temple.Service
	RoomService     room.Service
	BookingService  booking.Service
	OfferingService offering.Service
	EventService    event.Service
	FestivalService festival.Service
	DonationService donation.Service
	StatsService    stats.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles global middleware (CORS, logging, recovery) and registers
// routes for every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Catalog GETs are cacheable; anything touching reservations is not.
	var cacheMiddleware gin.HandlerFunc
	if cfg.CatalogCacheTTL > 0 {
		store := gocache.New(cfg.CatalogCacheTTL, 2*cfg.CatalogCacheTTL)
		cacheMiddleware = mw.Cache(store, cfg.CatalogCacheTTL)
	}

	var rateLimitMiddleware gin.HandlerFunc
	if cfg.BookingRatePerMin > 0 {
		perSecond := rate.Limit(float64(cfg.BookingRatePerMin) / 60)
		rateLimitMiddleware = mw.RateLimiter(perSecond, cfg.BookingRatePerMin)
	}

	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	templeHandler := templeHttp.NewHandler(cfg.TempleService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	offeringHandler := offeringHttp.NewHandler(cfg.OfferingService)
	eventHandler := eventHttp.NewHandler(cfg.EventService)
	festivalHandler := festivalHttp.NewHandler(cfg.FestivalService)
	donationHandler := donationHttp.NewHandler(cfg.DonationService)
	statsHandler := statsHttp.NewHandler(cfg.StatsService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		templeHttp.RegisterRoutes(v1, templeHandler, authMiddleware, adminMiddleware, cacheMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware, rateLimitMiddleware)
		offeringHttp.RegisterRoutes(v1, offeringHandler, authMiddleware, adminMiddleware, cacheMiddleware, rateLimitMiddleware)
		eventHttp.RegisterRoutes(v1, eventHandler, authMiddleware, adminMiddleware, cacheMiddleware)
		festivalHttp.RegisterRoutes(v1, festivalHandler, authMiddleware, adminMiddleware, cacheMiddleware, rateLimitMiddleware)
		donationHttp.RegisterRoutes(v1, donationHandler, authMiddleware, adminMiddleware)
		statsHttp.RegisterRoutes(v1, statsHandler, authMiddleware, adminMiddleware)
	}

	return r
}
