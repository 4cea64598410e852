package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/donations")

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("", h.ListMine)
		authed.GET("/:id", h.Get)
	}

	// === Admin Routes ===
	admin := g.Group("/admin/donations")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.AdminList)
	}
}
