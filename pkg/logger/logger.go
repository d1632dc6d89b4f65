package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextKey represents keys used in context for logging
type ContextKey string

const (
	// CorrelationIDKey is the key for correlation ID in context
	CorrelationIDKey ContextKey = "correlation_id"
	// RequestIDKey is the key for request ID in context
	RequestIDKey ContextKey = "request_id"
)

// Logger wraps zap logger with additional functionality
type Logger struct {
	*zap.Logger
}

// Config represents logger configuration
type Config struct {
	Level       string   `json:"level"`
	Environment string   `json:"environment"`
	OutputPaths []string `json:"output_paths"`
}

var (
	// Global logger instance
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// Initialize sets up the global logger
func Initialize(config *Config) error {
	var zapConfig zap.Config

	// Configure based on environment
	if config.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
		zapConfig.DisableStacktrace = true
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Set log level
	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = level

	// Set output paths
	if len(config.OutputPaths) > 0 {
		zapConfig.OutputPaths = config.OutputPaths
	}

	// Add custom fields
	zapConfig.InitialFields = map[string]interface{}{
		"service": "solana-token-tracker",
	}

	// Build logger
	zapLogger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	SetLogger(zapLogger)
	return nil
}

// SetLogger replaces the global logger, mostly useful in tests
func SetLogger(zapLogger *zap.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalLogger = wrap(zapLogger)
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	// Fallback to development logger if not initialized
	if err := Initialize(&Config{Level: "info", Environment: "development"}); err != nil {
		panic(fmt.Sprintf("failed to initialize fallback logger: %v", err))
	}
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func wrap(zapLogger *zap.Logger) *Logger {
	return &Logger{Logger: zapLogger}
}

// WithContext creates a logger with the correlation and request ids in ctx
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := []zap.Field{}

	// Add correlation ID if present
	if correlationID := GetCorrelationIDFromContext(ctx); correlationID != "" {
		fields = append(fields, zap.String("correlation_id", correlationID))
	}

	// Add request ID if present
	if requestID := GetRequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	return wrap(l.Logger.With(fields...))
}

// WithFields creates a logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}

	return wrap(l.Logger.With(zapFields...))
}

// LogAPICall records an outbound call and its payload. Only called when the
// debug toggle is on, so it logs at info level to stay visible.
func (l *Logger) LogAPICall(endpoint string, payload interface{}) {
	l.Logger.Info("API call",
		zap.String("endpoint", endpoint),
		zap.Any("payload", payload),
	)
}

// GenerateCorrelationID generates a new correlation ID
func GenerateCorrelationID() string {
	return uuid.New().String()
}

// GenerateRequestID generates a new request ID
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithCorrelationID adds correlation ID to context
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

// ContextWithRequestID adds request ID to context
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetCorrelationIDFromContext extracts correlation ID from context
func GetCorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(CorrelationIDKey).(string)
	return id
}

// GetRequestIDFromContext extracts request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// LoggingMiddleware creates a Gin middleware for structured logging with correlation IDs
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Reuse the caller's correlation ID, otherwise generate one
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = GenerateCorrelationID()
		}
		requestID := GenerateRequestID()

		// Add IDs to Gin context
		c.Set(string(CorrelationIDKey), correlationID)
		c.Set(string(RequestIDKey), requestID)

		// Add IDs to request context
		ctx := ContextWithCorrelationID(c.Request.Context(), correlationID)
		ctx = ContextWithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		// Add correlation ID to response headers
		c.Header("X-Correlation-ID", correlationID)
		c.Header("X-Request-ID", requestID)

		// Create logger with context
		log := GetLogger().WithContext(ctx)

		// Log request start
		log.Debug("Request started",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("client_ip", c.ClientIP()),
		)

		// Process request
		c.Next()

		// Log request completion
		statusCode := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.Int("response_size", c.Writer.Size()),
		}

		// Determine log level based on status code
		switch {
		case statusCode >= 500:
			log.Error("Request completed", fields...)
		case statusCode >= 400:
			log.Warn("Request completed", fields...)
		default:
			log.Info("Request completed", fields...)
		}

		// Log errors if any
		for _, err := range c.Errors {
			log.Error("Request error",
				zap.Uint64("error_type", uint64(err.Type)),
				zap.Error(err.Err),
			)
		}
	}
}

// RecoveryMiddleware creates a Gin middleware for panic recovery with logging
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Get logger with context
		ctx := c.Request.Context()

		// Log the panic
		GetLogger().WithContext(ctx).Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)

		// Return 500 error
		c.AbortWithStatusJSON(500, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Internal server error",
				"details": "An unexpected error occurred",
			},
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"correlation_id": GetCorrelationIDFromContext(ctx),
		})
	})
}
