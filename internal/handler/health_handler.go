package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a health handler; db and redis may be nil
// while connections are still being established
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health 헬스체크
// @Summary 헬스체크
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready 레디니스 체크
// @Summary 레디니스 체크
// @Description Reports per-dependency connection status
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()

	connections := gin.H{}
	ready := true

	if h.db == nil {
		connections["database"] = "connecting"
		ready = false
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		connections["database"] = "down"
		ready = false
	} else {
		connections["database"] = "up"
	}

	if h.redis == nil {
		connections["redis"] = "disabled"
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		connections["redis"] = "down"
	} else {
		connections["redis"] = "up"
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ready": ready, "connections": connections})
}
