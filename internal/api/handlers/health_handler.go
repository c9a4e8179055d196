package handlers

import (
	"net/http"
	"time"

	"seller-service/internal/config"
	"seller-service/internal/infrastructure/database"
	interfaces "seller-service/internal/interfaces/infrastructure"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db    *gorm.DB
	cache interfaces.SellerCache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, cache interfaces.SellerCache) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	cfg := config.Get()

	services := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := database.HealthCheck(h.db); err != nil {
			services["database"] = "unhealthy"
			status = "degraded"
		} else {
			services["database"] = "healthy"
		}
	}

	if h.cache != nil {
		if err := h.cache.Health(c.Request.Context()); err != nil {
			// cache is best-effort; a down cache degrades but does not fail
			services["cache"] = "unhealthy"
		} else {
			services["cache"] = "healthy"
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Services:  services,
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if h.db != nil {
		if err := database.HealthCheck(h.db); err != nil {
			c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"ready":     false,
				"timestamp": time.Now(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"ready":     true,
		"timestamp": time.Now(),
	})
}

// LivenessCheck handles GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	})
}
