package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
	"github.com/inspirefinder/likes-backend/internal/users"
)

// Engine is the slice of the recommendation engine the handlers use.
type Engine interface {
	Recommend(ctx context.Context, user domain.UserID, k int) ([]domain.ItemID, error)
	Statistics(ctx context.Context, user domain.UserID, k, countItems int, fresh bool) (*domain.Statistics, error)
}

// UserDirectory resolves user ids to displayable records.
type UserDirectory interface {
	GetByIDs(ctx context.Context, ids []int64) ([]users.User, error)
}

func (h *Handler) Register(g *gin.RouterGroup) {
	g.GET("/recommendations", h.recommend)
	g.GET("/statistics", h.statistics)
	g.POST("/cache/flush", h.flushCache)
}
