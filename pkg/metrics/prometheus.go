package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus holds the exported collectors for the HTTP API and the tracker
// API client.
type Prometheus struct {
	APIRequestDuration *prometheus.HistogramVec
	APIRequestTotal    *prometheus.CounterVec
	UpstreamDuration   *prometheus.HistogramVec
	FallbackTotal      *prometheus.CounterVec
}

// NewPrometheus registers the collectors on reg
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_api_request_duration_seconds",
				Help:    "API request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		APIRequestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_api_requests_total",
				Help: "Total API requests",
			},
			[]string{"method", "route", "status"},
		),
		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_upstream_request_duration_seconds",
				Help:    "Duration of calls to the remote token data API",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "outcome"},
		),
		FallbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_fallback_responses_total",
				Help: "Responses served from fallback data",
			},
			[]string{"endpoint", "reason"},
		),
	}
}

// ObserveUpstream records one outbound call
func (p *Prometheus) ObserveUpstream(endpoint, outcome string, duration time.Duration) {
	if p == nil {
		return
	}
	p.UpstreamDuration.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
}

// ObserveFallback records one fallback response
func (p *Prometheus) ObserveFallback(endpoint, reason string) {
	if p == nil {
		return
	}
	p.FallbackTotal.WithLabelValues(endpoint, reason).Inc()
}
