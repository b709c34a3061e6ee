package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inspirefinder/likes-backend/internal/likes/domain"
)

// Service is the slice of the like service the handlers use.
type Service interface {
	Like(ctx context.Context, userID, itemID int64) (*domain.Like, error)
	Unlike(ctx context.Context, userID, itemID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Like, error)
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

type likeReq struct {
	ItemID int64 `json:"item" binding:"required"`
}

func callerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetHeader("X-User-Id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) like(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}

	var req likeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	like, err := h.svc.Like(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		c.JSON(likeErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "like": like})
}

func (h *Handler) unlike(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}

	var req likeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.svc.Unlike(c.Request.Context(), userID, req.ItemID); err != nil {
		c.JSON(likeErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}

	likes, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if likes == nil {
		likes = []domain.Like{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "likes": likes})
}

func likeErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrLikeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOwnItem), errors.Is(err, domain.ErrNotPublished):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
