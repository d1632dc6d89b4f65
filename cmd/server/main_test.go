package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solana-token-tracker/internal/config"
	"solana-token-tracker/internal/models"
	"solana-token-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(trackerURL string, requestsPerMinute, burst int) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         "8080",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		Tracker: config.TrackerConfig{
			BaseURL: trackerURL,
			Timeout: time.Second,
		},
		RPC: config.RPCConfig{Timeout: time.Second},
		Wallet: config.WalletConfig{
			InstallURL: config.DefaultWalletInstallURL,
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			Burst:             burst,
			IdleTTL:           time.Minute,
			CleanupInterval:   time.Minute,
		},
		Logging: config.LoggingConfig{Level: "info"},
	}
}

func setupServer(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.SetLogger(zap.NewNop())
	return NewServer(cfg).Engine()
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestServer_UnconfiguredServesFallback(t *testing.T) {
	engine := setupServer(t, testConfig(config.DefaultTrackerURL, 60, 10))

	recorder := get(engine, "/api/trending-tokens")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Correlation-ID"))
	assert.Equal(t, "60", recorder.Header().Get("X-RateLimit-Limit"))

	var body models.TrendingTokensResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Tokens, 5)
	assert.Equal(t, models.ReasonNotConfigured, body.FallbackReason)
}

func TestServer_LiveUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"mint":"So11111111111111111111111111111111111111112","symbol":"SOL","name":"Solana","decimals":9,"price":150.5,"priceChange24h":1.2,"volume24h":1000,"marketCap":5000}]`))
	}))
	defer upstream.Close()

	engine := setupServer(t, testConfig(upstream.URL, 60, 10))

	recorder := get(engine, "/api/trending-tokens")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body models.TrendingTokensResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, models.SourceLive, body.Source)
	require.Len(t, body.Tokens, 1)
	assert.Equal(t, "SOL", body.Tokens[0].Symbol)
}

func TestServer_RateLimitAppliesToAPIOnly(t *testing.T) {
	engine := setupServer(t, testConfig(config.DefaultTrackerURL, 1, 1))

	assert.Equal(t, http.StatusOK, get(engine, "/api/trending-tokens").Code)

	recorder := get(engine, "/api/trending-tokens")
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Retry-After"))

	var errBody models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &errBody))
	assert.Equal(t, models.ErrorCodeRateLimitExceeded, errBody.Error.Code)
	assert.Equal(t, "Maximum 1 requests per minute allowed.", errBody.Error.Details)
	assert.Equal(t, recorder.Header().Get("X-Correlation-ID"), errBody.CorrelationID)
	assert.NotEmpty(t, errBody.CorrelationID)

	assert.Equal(t, http.StatusOK, get(engine, "/health/live").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/status").Code)
}

func TestServer_MetricsEndpoints(t *testing.T) {
	engine := setupServer(t, testConfig(config.DefaultTrackerURL, 60, 10))

	get(engine, "/api/trending-tokens")
	get(engine, "/api/wallet/9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")

	recorder := get(engine, "/metrics")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Performance map[string]interface{} `json:"performance"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Performance["fallbacks_served"])
	assert.EqualValues(t, 0, body.Performance["upstream_calls"])

	recorder = get(engine, "/metrics/prometheus")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "tracker_fallback_responses_total")
	assert.Contains(t, recorder.Body.String(), "go_goroutines")

	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/metrics/reset", nil))
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = get(engine, "/metrics")
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.EqualValues(t, 0, body.Performance["fallbacks_served"])
	// only the in-flight /metrics request itself
	assert.EqualValues(t, 1, body.Performance["active_requests"])
}

func TestServer_StatusReportsWallet(t *testing.T) {
	engine := setupServer(t, testConfig(config.DefaultTrackerURL, 60, 10))

	recorder := get(engine, "/status")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["tracker_configured"])
	assert.NotContains(t, body, "rpc_healthy")

	walletState, ok := body["wallet"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, walletState["installed"])
}

func TestServer_CORSPreflight(t *testing.T) {
	engine := setupServer(t, testConfig(config.DefaultTrackerURL, 60, 10))

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodOptions, "/api/trending-tokens", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}
