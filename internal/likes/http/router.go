package http

import (
	"github.com/gin-gonic/gin"
	"github.com/inspirefinder/likes-backend/internal/api/http/middleware"
)

// Register mounts the like routes. The write endpoints are rate
// limited: like/unlike storms are the one place the counter
// read-modify-write contends.
func (h *Handler) Register(g *gin.RouterGroup) {
	writes := g.Group("")
	writes.Use(middleware.RateLimit(10, 20))
	writes.POST("/likes", h.like)
	writes.DELETE("/likes", h.unlike)

	g.GET("/my/likes", h.listMine)
}
