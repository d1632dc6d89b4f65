package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"solana-token-tracker/internal/config"
	"solana-token-tracker/internal/models"
)

// HealthStatus represents the health status of a service
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusDegraded  HealthStatus = "degraded"
)

// HealthCheck represents a health check result
type HealthCheck struct {
	Service      string        `json:"service"`
	Status       HealthStatus  `json:"status"`
	Message      string        `json:"message,omitempty"`
	ResponseTime time.Duration `json:"response_time"`
	Timestamp    time.Time     `json:"timestamp"`
}

// HealthChecker probes the upstream dependencies. Upstream outages only ever
// degrade the service because queries fall back to fixed data.
type HealthChecker struct {
	tracker *config.TrackerConfig
	client  *http.Client
	rpc     RPCHealthChecker
}

// NewHealthChecker creates a health checker. rpc may be nil.
func NewHealthChecker(tracker *config.TrackerConfig, rpc RPCHealthChecker) *HealthChecker {
	return &HealthChecker{
		tracker: tracker,
		client:  &http.Client{},
		rpc:     rpc,
	}
}

// DataMode reports whether queries attempt the live API or go straight to
// fallback data
func (h *HealthChecker) DataMode() models.Source {
	if h.tracker.IsConfigured() {
		return models.SourceLive
	}
	return models.SourceFallback
}

// CheckTrackerAPI reports whether the tracker API is configured and reachable
func (h *HealthChecker) CheckTrackerAPI(ctx context.Context) *HealthCheck {
	start := time.Now()
	check := &HealthCheck{
		Service:   "tracker_api",
		Timestamp: start,
	}

	if !h.tracker.IsConfigured() {
		check.Status = HealthStatusDegraded
		check.Message = "no API endpoint configured, serving fallback data"
		check.ResponseTime = time.Since(start)
		return check
	}

	timeout := h.tracker.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.tracker.BaseURL, nil)
	if err != nil {
		check.Status = HealthStatusDegraded
		check.Message = fmt.Sprintf("invalid endpoint: %v", err)
		check.ResponseTime = time.Since(start)
		return check
	}

	resp, err := h.client.Do(req)
	check.ResponseTime = time.Since(start)
	if err != nil {
		check.Status = HealthStatusDegraded
		check.Message = fmt.Sprintf("endpoint unreachable, serving fallback data: %v", err)
		return check
	}
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		check.Status = HealthStatusDegraded
		check.Message = fmt.Sprintf("endpoint returned %d, serving fallback data", resp.StatusCode)
		return check
	}

	check.Status = HealthStatusHealthy
	check.Message = "endpoint reachable"
	return check
}

// CheckRPC probes the Solana RPC endpoint. It returns nil when none is configured.
func (h *HealthChecker) CheckRPC(ctx context.Context) *HealthCheck {
	if h.rpc == nil {
		return nil
	}

	start := time.Now()
	check := &HealthCheck{
		Service:   "solana_rpc",
		Timestamp: start,
	}

	if err := h.rpc.IsHealthy(ctx); err != nil {
		check.Status = HealthStatusDegraded
		check.Message = err.Error()
	} else {
		check.Status = HealthStatusHealthy
		check.Message = "rpc responsive"
	}
	check.ResponseTime = time.Since(start)
	return check
}

// GetDetailedHealth returns every configured check keyed by name
func (h *HealthChecker) GetDetailedHealth(ctx context.Context) map[string]*HealthCheck {
	checks := map[string]*HealthCheck{
		"tracker_api": h.CheckTrackerAPI(ctx),
	}
	if rpcCheck := h.CheckRPC(ctx); rpcCheck != nil {
		checks["solana_rpc"] = rpcCheck
	}
	return checks
}

// OverallStatus folds individual checks into one status
func OverallStatus(checks map[string]*HealthCheck) HealthStatus {
	overall := HealthStatusHealthy
	for _, check := range checks {
		if check.Status == HealthStatusUnhealthy {
			return HealthStatusUnhealthy
		}
		if check.Status == HealthStatusDegraded {
			overall = HealthStatusDegraded
		}
	}
	return overall
}
