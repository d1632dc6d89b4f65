package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })
	return logs
}

func TestInitialize_RejectsUnknownLevel(t *testing.T) {
	err := Initialize(&Config{Level: "loud", Environment: "development"})
	assert.Error(t, err)
}

func TestWithContext_AddsIDs(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	ctx := ContextWithCorrelationID(context.Background(), "corr-1")
	ctx = ContextWithRequestID(ctx, "req-1")
	GetLogger().WithContext(ctx).Info("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "corr-1", fields["correlation_id"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestWithFields(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	GetLogger().WithFields(map[string]interface{}{
		"endpoint": "wallet",
		"attempt":  1,
	}).Debug("fields")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "wallet", fields["endpoint"])
	assert.EqualValues(t, 1, fields["attempt"])
}

func TestContextHelpers_MissingValues(t *testing.T) {
	assert.Empty(t, GetCorrelationIDFromContext(context.Background()))
	assert.Empty(t, GetRequestIDFromContext(nil))
}

func TestLogAPICall(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	GetLogger().LogAPICall("getWalletInfo", map[string]string{"address": "abc"})

	entries := logs.FilterMessage("API call").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "getWalletInfo", entries[0].ContextMap()["endpoint"])
}

func TestLoggingMiddleware_CorrelationHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := observe(t, zapcore.InfoLevel)

	engine := gin.New()
	engine.Use(LoggingMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, "given-id", GetCorrelationIDFromContext(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	engine.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-ID", "given-id")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, "given-id", recorder.Header().Get("X-Correlation-ID"))
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.NotEmpty(t, recorder.Header().Get("X-Correlation-ID"))

	completed := logs.FilterMessage("Request completed").All()
	require.Len(t, completed, 2)
	assert.Equal(t, zapcore.InfoLevel, completed[0].Level)
	assert.Equal(t, zapcore.WarnLevel, completed[1].Level)
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := observe(t, zapcore.ErrorLevel)

	engine := gin.New()
	engine.Use(RecoveryMiddleware(), LoggingMiddleware())
	engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}
