package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(g *gin.RouterGroup) {
	g.GET("/categories", h.listCategories)
	g.GET("/categories/:id/items", h.listItems)

	g.GET("/items/:id", h.getItem)
	g.POST("/items", h.create)
	g.PUT("/items/:id", h.update)
	g.DELETE("/items/:id", h.delete)

	g.GET("/my/items", h.listOwn)
	g.GET("/my/liked-items", h.listLiked)
}
