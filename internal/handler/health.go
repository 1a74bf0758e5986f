package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportsconnect/api/internal/constants"
)

// Pinger is any dependency that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    *gorm.DB
	redis Pinger
}

func NewHealthHandler(db *gorm.DB, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) pingDB(ctx context.Context) string {
	if h.db == nil {
		return "disconnected"
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "disconnected"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}

func (h *HealthHandler) pingRedis(ctx context.Context) string {
	if h.redis == nil {
		return "disconnected"
	}
	if err := h.redis.Ping(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}

// Health reports service and dependency status. The endpoint answers 200
// even when a dependency is down; the payload carries the detail.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"database": h.pingDB(ctx),
			"redis":    h.pingRedis(ctx),
		},
	})
}

// Index describes the API surface at the root path.
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    constants.AppName,
		"version": constants.AppVersion,
		"endpoints": gin.H{
			"auth":   "/api/auth",
			"users":  "/api/users",
			"admin":  "/api/admin",
			"health": "/health",
		},
	})
}
