package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Cache     string    `json:"cache,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          *pgxpool.Pool
	redis       *redis.Client
}

func NewHealthHandler(serviceName, version string, db *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		redis:       rdb,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "ok"

	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
			status = "degraded"
		} else {
			dbStatus = "ok"
		}
	}

	cacheStatus := "disabled"
	if h.redis != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.redis.Ping(pingCtx).Err(); err != nil {
			cacheStatus = "down"
			status = "degraded"
		} else {
			cacheStatus = "ok"
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)
}
