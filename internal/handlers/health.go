package handlers

import (
	"net/http"
	"time"

	"solana-token-tracker/internal/services"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	checker *services.HealthChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker *services.HealthChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
	}
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status    services.HealthStatus            `json:"status"`
	Timestamp time.Time                        `json:"timestamp"`
	Services  map[string]*services.HealthCheck `json:"services"`
}

// GetHealth returns the overall health status. Degraded still answers 200
// because every query has fallback data.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	checks := h.checker.GetDetailedHealth(c.Request.Context())
	status := services.OverallStatus(checks)

	statusCode := http.StatusOK
	if status == services.HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  checks,
	})
}

// GetLiveness returns a simple liveness check
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// GetReadiness always reports ready since no dependency is required to
// serve. data_source tells whether queries will try the live API.
func (h *HealthHandler) GetReadiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ready",
		"data_source": h.checker.DataMode(),
		"timestamp":   time.Now(),
	})
}
