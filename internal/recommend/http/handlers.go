package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inspirefinder/likes-backend/internal/cache"
	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
	"github.com/inspirefinder/likes-backend/internal/users"
)

// Defaults are the engine fan-out parameters used when the request does
// not override them.
type Defaults struct {
	RecommendK   int
	StatisticsK  int
	PopularItems int
}

type Handler struct {
	engine   Engine
	users    UserDirectory
	cache    *cache.Cache
	defaults Defaults
}

func New(engine Engine, userDir UserDirectory, c *cache.Cache, defaults Defaults) *Handler {
	return &Handler{
		engine:   engine,
		users:    userDir,
		cache:    c,
		defaults: defaults,
	}
}

// userID reads the target user from the user query param, falling back
// to the X-User-Id header. Authentication is out of scope; the API
// trusts the caller to supply the identity.
func userID(c *gin.Context) (domain.UserID, bool) {
	raw := c.Query("user")
	if raw == "" {
		raw = c.GetHeader("X-User-Id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return domain.UserID(id), true
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (h *Handler) recommend(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "user is required"})
		return
	}
	k := intQuery(c, "k", h.defaults.RecommendK)

	items, err := h.engine.Recommend(c.Request.Context(), user, k)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if items == nil {
		items = []domain.ItemID{}
	}

	c.JSON(http.StatusOK, recommendResponse{OK: true, UserID: user, Items: items})
}

func (h *Handler) statistics(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "user is required"})
		return
	}
	k := intQuery(c, "k", h.defaults.StatisticsK)
	countItems := intQuery(c, "items", h.defaults.PopularItems)
	fresh := c.Query("fresh") == "1" || c.Query("fresh") == "true"

	stats, err := h.engine.Statistics(c.Request.Context(), user, k, countItems, fresh)
	if err != nil {
		// Cache corruption lands here too: it indicates a programming
		// bug and is surfaced, never patched over by a recompute.
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ids := make([]int64, 0, len(stats.SimilarUsers))
	for _, n := range stats.SimilarUsers {
		ids = append(ids, int64(n.User))
	}
	similar, err := h.users.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if similar == nil {
		similar = []users.User{}
	}
	popular := stats.PopularItems
	if popular == nil {
		popular = []domain.RankedItem{}
	}

	c.JSON(http.StatusOK, statisticsResponse{
		OK:           true,
		UserID:       user,
		SimilarUsers: similar,
		PopularItems: popular,
		Fresh:        fresh,
	})
}

// flushCache is the out-of-band operator flush for the no-TTL cache.
func (h *Handler) flushCache(c *gin.Context) {
	dropped, err := h.cache.InvalidateAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flushResponse{OK: true, Dropped: dropped})
}
