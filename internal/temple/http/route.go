package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc, cacheMiddleware gin.HandlerFunc) {
	group := g.Group("/temples")

	// === Public Routes ===
	if cacheMiddleware != nil {
		group.GET("", cacheMiddleware, h.List)
		group.GET("/:id", cacheMiddleware, h.Get)
	} else {
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
	}
}
