package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/stackadvisor-backend/internal/clients/redis"
)

type HealthHandler struct {
	db    *gorm.DB
	cache redis.Cache
}

// NewHealthHandler accepts a nil cache when Redis is not configured.
func NewHealthHandler(db *gorm.DB, cache redis.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok", "database": "ok"}

	if err := h.pingDB(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = err.Error()
	}
	if h.cache != nil {
		body["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			// the cache is optional; report it without failing the probe
			body["cache"] = err.Error()
		}
	}
	c.JSON(status, body)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	if h.db == nil {
		return errNoDatabase
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
