package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/database"
)

// HealthHandler reports whether the service and its stores are reachable.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a HealthHandler. redis may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":   "healthy",
		"message":  "Recipe Box API is running",
		"database": "ok",
		"redis":    "disabled",
	}

	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = err.Error()
	}
	if h.redis != nil {
		// Redis only backs caching and rate limits, so it never fails the check.
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			body["redis"] = err.Error()
		} else {
			body["redis"] = "ok"
		}
	}
	c.JSON(status, body)
}
