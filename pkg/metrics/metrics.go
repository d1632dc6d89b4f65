package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics is a snapshot of request and upstream counters
type Metrics struct {
	// Request metrics
	TotalRequests      int64 `json:"total_requests"`
	SuccessfulRequests int64 `json:"successful_requests"`
	FailedRequests     int64 `json:"failed_requests"`
	ActiveRequests     int64 `json:"active_requests"`

	// Response time metrics
	AverageResponseTime time.Duration `json:"average_response_time"`
	MinResponseTime     time.Duration `json:"min_response_time"`
	MaxResponseTime     time.Duration `json:"max_response_time"`

	// Upstream API metrics
	UpstreamCalls       int64         `json:"upstream_calls"`
	UpstreamFailures    int64         `json:"upstream_failures"`
	AverageUpstreamTime time.Duration `json:"average_upstream_time"`

	// Responses served from the fallback dataset
	FallbacksServed int64 `json:"fallbacks_served"`
}

// MetricsCollector provides thread-safe metrics collection
type MetricsCollector struct {
	totalRequests      atomic.Int64
	successfulRequests atomic.Int64
	failedRequests     atomic.Int64
	activeRequests     atomic.Int64
	upstreamCalls      atomic.Int64
	upstreamFailures   atomic.Int64
	fallbacksServed    atomic.Int64

	mu                sync.RWMutex
	completed         int64
	totalResponseTime time.Duration
	minResponseTime   time.Duration
	maxResponseTime   time.Duration
	totalUpstreamTime time.Duration
	startTime         time.Time
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{startTime: time.Now()}
}

// RecordRequest records a new inbound request
func (mc *MetricsCollector) RecordRequest() {
	mc.totalRequests.Add(1)
	mc.activeRequests.Add(1)
}

// RecordRequestComplete records request completion
func (mc *MetricsCollector) RecordRequestComplete(duration time.Duration, success bool) {
	mc.activeRequests.Add(-1)
	if success {
		mc.successfulRequests.Add(1)
	} else {
		mc.failedRequests.Add(1)
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.completed++
	mc.totalResponseTime += duration
	if mc.completed == 1 || duration < mc.minResponseTime {
		mc.minResponseTime = duration
	}
	if duration > mc.maxResponseTime {
		mc.maxResponseTime = duration
	}
}

// RecordUpstreamCall records one outbound call to the tracker API
func (mc *MetricsCollector) RecordUpstreamCall(duration time.Duration, success bool) {
	mc.upstreamCalls.Add(1)
	if !success {
		mc.upstreamFailures.Add(1)
	}

	mc.mu.Lock()
	mc.totalUpstreamTime += duration
	mc.mu.Unlock()
}

// RecordFallback records a response served from fallback data
func (mc *MetricsCollector) RecordFallback() {
	mc.fallbacksServed.Add(1)
}

// GetMetrics returns a copy of current metrics
func (mc *MetricsCollector) GetMetrics() *Metrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	m := &Metrics{
		TotalRequests:      mc.totalRequests.Load(),
		SuccessfulRequests: mc.successfulRequests.Load(),
		FailedRequests:     mc.failedRequests.Load(),
		ActiveRequests:     mc.activeRequests.Load(),
		MinResponseTime:    mc.minResponseTime,
		MaxResponseTime:    mc.maxResponseTime,
		UpstreamCalls:      mc.upstreamCalls.Load(),
		UpstreamFailures:   mc.upstreamFailures.Load(),
		FallbacksServed:    mc.fallbacksServed.Load(),
	}
	if mc.completed > 0 {
		m.AverageResponseTime = mc.totalResponseTime / time.Duration(mc.completed)
	}
	if m.UpstreamCalls > 0 {
		m.AverageUpstreamTime = mc.totalUpstreamTime / time.Duration(m.UpstreamCalls)
	}
	return m
}

// GetUptime returns the uptime since metrics collection started
func (mc *MetricsCollector) GetUptime() time.Duration {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return time.Since(mc.startTime)
}

// Reset resets all metrics. Requests still in flight stay counted as active.
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.totalRequests.Store(0)
	mc.successfulRequests.Store(0)
	mc.failedRequests.Store(0)
	mc.upstreamCalls.Store(0)
	mc.upstreamFailures.Store(0)
	mc.fallbacksServed.Store(0)

	mc.completed = 0
	mc.totalResponseTime = 0
	mc.minResponseTime = 0
	mc.maxResponseTime = 0
	mc.totalUpstreamTime = 0
	mc.startTime = time.Now()
}

// GetSuccessRate returns the success rate as a percentage of completed requests
func (mc *MetricsCollector) GetSuccessRate() float64 {
	successful := mc.successfulRequests.Load()
	total := successful + mc.failedRequests.Load()
	if total == 0 {
		return 0.0
	}
	return float64(successful) / float64(total) * 100.0
}

// GetFallbackRatio returns the share of upstream-backed queries that were
// answered with fallback data, as a percentage
func (mc *MetricsCollector) GetFallbackRatio() float64 {
	fallbacks := mc.fallbacksServed.Load()
	live := mc.upstreamCalls.Load() - mc.upstreamFailures.Load()
	total := fallbacks + live
	if total == 0 {
		return 0.0
	}
	return float64(fallbacks) / float64(total) * 100.0
}
