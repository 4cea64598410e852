package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	rooms := g.Group("/rooms")
	{
		rooms.GET("", h.List)
		rooms.GET("/:id", h.Get)
	}

	types := g.Group("/room-types")
	{
		types.GET("", h.ListTypes)
	}

	// === Admin Routes ===
	adminRooms := rooms.Group("")
	adminRooms.Use(authMiddleware, adminMiddleware)
	{
		adminRooms.POST("", h.Create)
		adminRooms.PATCH("/:id/status", h.SetStatus)
	}

	adminTypes := types.Group("")
	adminTypes.Use(authMiddleware, adminMiddleware)
	{
		adminTypes.POST("", h.CreateType)
	}
}
