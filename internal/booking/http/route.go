package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc, rateLimitMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Public Routes ===
	group.GET("/availability", h.CheckAvailability)

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		if rateLimitMiddleware != nil {
			authed.POST("", rateLimitMiddleware, h.Create)
		} else {
			authed.POST("", h.Create)
		}
		authed.GET("", h.ListMine)
		authed.GET("/:id", h.Get)
		authed.POST("/:id/cancel", h.Cancel)
	}

	// === Admin Routes ===
	admin := g.Group("/admin/bookings")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.AdminList)
		admin.PATCH("/:id/status", h.AdvanceStatus)
		admin.PATCH("/:id/payment", h.SetPayment)
	}
}
