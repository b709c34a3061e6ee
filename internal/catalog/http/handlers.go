package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inspirefinder/likes-backend/internal/catalog/domain"
	"github.com/inspirefinder/likes-backend/internal/catalog/repository"
	"github.com/inspirefinder/likes-backend/internal/catalog/service"
)

type Handler struct {
	svc *service.CatalogService
}

func New(svc *service.CatalogService) *Handler {
	return &Handler{svc: svc}
}

// viewerID reads the optional caller identity. Anonymous requests see
// the unpersonalized listings.
func viewerID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.GetHeader("X-User-Id"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "categories": cats})
}

func (h *Handler) listItems(c *gin.Context) {
	categoryID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category id"})
		return
	}

	items, err := h.svc.Items(c.Request.Context(), categoryID, viewerID(c), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) getItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid item id"})
		return
	}

	it, err := h.svc.Item(c.Request.Context(), id)
	if errors.Is(err, domain.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// Unpublished items are visible to their owner only.
	if !it.IsPublished && it.OwnerID != viewerID(c) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": it})
}

func (h *Handler) listOwn(c *gin.Context) {
	viewer := viewerID(c)
	if viewer == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}

	items, err := h.svc.OwnItems(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) listLiked(c *gin.Context) {
	viewer := viewerID(c)
	if viewer == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}

	items, err := h.svc.LikedItems(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) create(c *gin.Context) {
	viewer := viewerID(c)
	if viewer == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}

	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || req.CategoryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	it, err := h.svc.Create(c.Request.Context(), repository.CreateItem{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		OwnerID:     viewer,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "item": it})
}

func (h *Handler) update(c *gin.Context) {
	viewer := viewerID(c)
	if viewer == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid item id"})
		return
	}

	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	it, err := h.svc.Update(c.Request.Context(), id, viewer, repository.UpdateItem{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		c.JSON(catalogErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "item": it})
}

func (h *Handler) delete(c *gin.Context) {
	viewer := viewerID(c)
	if viewer == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "X-User-Id header is required"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid item id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, viewer); err != nil {
		c.JSON(catalogErrorStatus(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func catalogErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
