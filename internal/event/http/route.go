package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc, cacheMiddleware gin.HandlerFunc) {
	group := g.Group("/events")

	// === Public Routes ===
	if cacheMiddleware != nil {
		group.GET("", cacheMiddleware, h.List)
		group.GET("/:id", cacheMiddleware, h.Get)
	} else {
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("/:id/register", h.Register)
	}
	g.GET("/event-registrations", authMiddleware, h.ListMyRegistrations)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.GET("/:id/registrations", h.ListRegistrations)
	}
}
