package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc, cacheMiddleware, rateLimitMiddleware gin.HandlerFunc) {
	group := g.Group("/festivals")

	// === Public Routes ===
	if cacheMiddleware != nil {
		group.GET("", cacheMiddleware, h.List)
		group.GET("/:id", cacheMiddleware, h.Get)
	} else {
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	// === Authenticated Routes ===
	bookings := g.Group("/festival-bookings")
	bookings.Use(authMiddleware)
	{
		if rateLimitMiddleware != nil {
			bookings.POST("", rateLimitMiddleware, h.Book)
		} else {
			bookings.POST("", h.Book)
		}
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.POST("/:id/cancel", h.Cancel)
	}

	adminBookings := g.Group("/admin/festival-bookings")
	adminBookings.Use(authMiddleware, adminMiddleware)
	{
		adminBookings.GET("", h.AdminListBookings)
		adminBookings.PATCH("/:id/status", h.AdvanceBookingStatus)
	}
}
