package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solana-token-tracker/internal/config"
	"solana-token-tracker/internal/handlers"
	"solana-token-tracker/internal/middleware"
	"solana-token-tracker/internal/models"
	"solana-token-tracker/internal/services"
	"solana-token-tracker/internal/wallet"
	"solana-token-tracker/pkg/logger"
	"solana-token-tracker/pkg/metrics"
	"solana-token-tracker/pkg/ratelimiter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the main application server
type Server struct {
	httpServer    *http.Server
	config        *config.Config
	dataSource    *services.DataSource
	solanaClient  *services.SolanaClient
	session       *wallet.Session
	collector     *metrics.MetricsCollector
	prometheus    *metrics.Prometheus
	registry      *prometheus.Registry
	rateLimiter   *ratelimiter.RateLimiter
	router        *handlers.Router
	startTime     time.Time
	stopCleanupCh chan struct{}
}

func main() {
	cfg := config.LoadConfig()

	if err := logger.Initialize(&logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
		OutputPaths: cfg.Logging.OutputPaths,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.GetLogger()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Starting Solana token tracker server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("tracker_url", cfg.Tracker.BaseURL),
		zap.Bool("tracker_configured", cfg.Tracker.IsConfigured()),
		zap.Bool("tracker_api_key_set", cfg.Tracker.APIKey != ""),
		zap.Duration("tracker_timeout", cfg.Tracker.Timeout),
		zap.Bool("debug_mode", cfg.Tracker.Debug),
		zap.Int("rate_limit_rpm", cfg.RateLimit.RequestsPerMinute),
		zap.String("log_level", cfg.Logging.Level),
	)

	server := NewServer(cfg)

	if err := server.Start(); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) *Server {
	log := logger.GetLogger()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := metrics.NewPrometheus(registry)
	collector := metrics.NewMetricsCollector()

	dataSource := services.NewDataSource(&cfg.Tracker,
		services.WithMetrics(collector),
		services.WithPrometheus(prom),
	)
	if !cfg.Tracker.IsConfigured() {
		log.Warn("Tracker API not configured, all queries will use fallback data")
	}

	var rpcChecker services.RPCHealthChecker
	solanaClient := services.NewSolanaClient(&cfg.RPC)
	if solanaClient != nil {
		rpcChecker = solanaClient
	}

	provider := wallet.Detect(&cfg.Wallet)
	log.Info("Wallet provider detected",
		zap.String("provider", provider.Name()),
		zap.Bool("installed", provider.Installed()),
	)
	session := wallet.NewSession(provider, cfg.Wallet.InstallURL)

	healthHandler := handlers.NewHealthHandler(services.NewHealthChecker(&cfg.Tracker, rpcChecker))

	return &Server{
		config:        cfg,
		dataSource:    dataSource,
		solanaClient:  solanaClient,
		session:       session,
		collector:     collector,
		prometheus:    prom,
		registry:      registry,
		rateLimiter:   ratelimiter.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL),
		router:        handlers.NewRouter(dataSource, session, healthHandler),
		startTime:     time.Now(),
		stopCleanupCh: make(chan struct{}),
	}
}

// Engine builds the gin engine with middleware and routes
func (s *Server) Engine() *gin.Engine {
	engine := gin.New()

	engine.Use(logger.RecoveryMiddleware())
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(s.collector, s.prometheus))
	engine.Use(s.corsMiddleware())

	s.router.SetupHealthRoutes(engine)

	api := engine.Group("/api")
	api.Use(s.rateLimiter.Middleware(rateLimited))
	s.router.SetupRoutes(api)

	engine.GET("/metrics", s.metricsHandler)
	engine.POST("/metrics/reset", s.resetMetricsHandler)
	engine.GET("/metrics/prometheus", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	engine.GET("/status", s.statusHandler)

	return engine
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start() error {
	log := logger.GetLogger()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port),
		Handler:           s.Engine(),
		ReadTimeout:       s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       s.config.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	s.startCleanupRoutines()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return s.waitForShutdown(errCh)
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// metricsHandler reports request and upstream statistics as JSON
func (s *Server) metricsHandler(c *gin.Context) {
	snapshot := s.collector.GetMetrics()

	c.JSON(http.StatusOK, gin.H{
		"service": "solana-token-tracker",
		"performance": gin.H{
			"uptime":                   s.collector.GetUptime().String(),
			"total_requests":           snapshot.TotalRequests,
			"successful_requests":      snapshot.SuccessfulRequests,
			"failed_requests":          snapshot.FailedRequests,
			"success_rate_percent":     s.collector.GetSuccessRate(),
			"average_response_time_ms": snapshot.AverageResponseTime.Milliseconds(),
			"min_response_time_ms":     snapshot.MinResponseTime.Milliseconds(),
			"max_response_time_ms":     snapshot.MaxResponseTime.Milliseconds(),
			"active_requests":          snapshot.ActiveRequests,
			"upstream_calls":           snapshot.UpstreamCalls,
			"upstream_failures":        snapshot.UpstreamFailures,
			"average_upstream_time_ms": snapshot.AverageUpstreamTime.Milliseconds(),
			"fallbacks_served":         snapshot.FallbacksServed,
			"fallback_ratio_percent":   s.collector.GetFallbackRatio(),
			"rate_limited_clients":     s.rateLimiter.Size(),
		},
	})
}

// resetMetricsHandler clears the JSON metrics counters. Prometheus series are
// cumulative and left untouched.
func (s *Server) resetMetricsHandler(c *gin.Context) {
	s.collector.Reset()
	logger.GetLogger().WithContext(c.Request.Context()).Info("Metrics collector reset")
	c.Status(http.StatusNoContent)
}

// rateLimited answers a throttled request with the standard error envelope
func rateLimited(c *gin.Context, limit int) {
	details := fmt.Sprintf("Maximum %d requests per minute allowed.", limit)
	models.HandleError(c, models.NewRateLimitError(details), logger.GetLogger().WithContext(c.Request.Context()))
}

// statusHandler reports configuration state and RPC reachability
func (s *Server) statusHandler(c *gin.Context) {
	status := gin.H{
		"service":            "solana-token-tracker",
		"status":             "running",
		"tracker_configured": s.config.Tracker.IsConfigured(),
		"wallet":             s.session.State(),
		"uptime":             time.Since(s.startTime).String(),
	}

	if s.solanaClient != nil {
		status["rpc_healthy"] = s.solanaClient.IsHealthy(c.Request.Context()) == nil
	}

	c.JSON(http.StatusOK, status)
}

// startCleanupRoutines starts background cleanup tasks
func (s *Server) startCleanupRoutines() {
	interval := s.config.RateLimit.CleanupInterval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.rateLimiter.Cleanup()
			case <-s.stopCleanupCh:
				return
			}
		}
	}()

	logger.GetLogger().Debug("Rate limiter cleanup routine started", zap.Duration("interval", interval))
}

// waitForShutdown waits for an interrupt signal or a listener error and
// shuts the HTTP server down gracefully
func (s *Server) waitForShutdown(errCh <-chan error) error {
	log := logger.GetLogger()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		close(s.stopCleanupCh)
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	close(s.stopCleanupCh)

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	if err := log.Sync(); err != nil {
		// stdout/stderr sync errors are expected on some platforms
		fmt.Printf("Error syncing logger: %v\n", err)
	}

	log.Info("Server gracefully stopped")
	return nil
}
