package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"solana-token-tracker/internal/config"
	"solana-token-tracker/internal/models"
	"solana-token-tracker/internal/services"
	"solana-token-tracker/internal/wallet"
	"solana-token-tracker/pkg/logger"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

// countingDataSource wraps a real DataSource and counts wallet lookups
type countingDataSource struct {
	services.TokenDataSource
	walletCalls atomic.Int64
}

func (c *countingDataSource) FetchWalletInfo(ctx context.Context, address string) *models.Result[models.WalletInfo] {
	c.walletCalls.Add(1)
	return c.TokenDataSource.FetchWalletInfo(ctx, address)
}

type rejectingProvider struct{}

func (rejectingProvider) Name() string    { return "stub" }
func (rejectingProvider) Installed() bool { return true }
func (rejectingProvider) Connect(ctx context.Context) (solana.PublicKey, error) {
	return solana.PublicKey{}, errors.New("user rejected the request")
}
func (rejectingProvider) Disconnect(ctx context.Context) error { return nil }
func (rejectingProvider) PublicKey() *solana.PublicKey         { return nil }

func setupEngine(t *testing.T, provider wallet.Provider) (*gin.Engine, *countingDataSource) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.SetLogger(zap.NewNop())

	tracker := &config.TrackerConfig{BaseURL: config.DefaultTrackerURL}
	dataSource := &countingDataSource{TokenDataSource: services.NewDataSource(tracker)}
	session := wallet.NewSession(provider, config.DefaultWalletInstallURL)
	health := NewHealthHandler(services.NewHealthChecker(tracker, nil))

	router := NewRouter(dataSource, session, health)
	engine := gin.New()
	engine.Use(logger.LoggingMiddleware())
	router.SetupRoutes(engine.Group("/api"))
	router.SetupHealthRoutes(engine)
	return engine, dataSource
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(method, path, nil))
	return recorder
}

func TestGetTrendingTokens(t *testing.T) {
	engine, _ := setupEngine(t, wallet.Absent())

	recorder := serve(engine, http.MethodGet, "/api/trending-tokens")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body models.TrendingTokensResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, models.SourceFallback, body.Source)
	assert.Equal(t, models.ReasonNotConfigured, body.FallbackReason)
	assert.Equal(t, services.FallbackTrendingTokens(), body.Tokens)
}

func TestGetWalletInfo(t *testing.T) {
	engine, dataSource := setupEngine(t, wallet.Absent())

	recorder := serve(engine, http.MethodGet, "/api/wallet/"+testWallet)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body models.WalletInfoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, testWallet, body.Wallet.Address)
	assert.Equal(t, models.SourceFallback, body.Source)
	assert.Equal(t, int64(1), dataSource.walletCalls.Load())
}

func TestGetWalletInfo_InvalidAddressFailsBeforeFetching(t *testing.T) {
	engine, dataSource := setupEngine(t, wallet.Absent())

	for _, address := range []string{"short", "0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl", testWallet + "extra"} {
		recorder := serve(engine, http.MethodGet, "/api/wallet/"+address)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, address)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, models.ErrorCodeInvalidWallet, body.Error.Code)
		assert.NotEmpty(t, body.CorrelationID)
	}

	assert.Equal(t, int64(0), dataSource.walletCalls.Load())
}

func TestWalletConnection_Absent(t *testing.T) {
	engine, _ := setupEngine(t, wallet.Absent())

	recorder := serve(engine, http.MethodGet, "/api/wallet-connection")
	require.Equal(t, http.StatusOK, recorder.Code)

	var state wallet.State
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &state))
	assert.False(t, state.Installed)
	assert.Equal(t, config.DefaultWalletInstallURL, state.InstallURL)

	recorder = serve(engine, http.MethodPost, "/api/wallet-connection/connect")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), string(models.ErrorCodeWalletNotInstalled))
}

func TestWalletConnection_ConnectFailure(t *testing.T) {
	engine, _ := setupEngine(t, rejectingProvider{})

	recorder := serve(engine, http.MethodPost, "/api/wallet-connection/connect")
	assert.Equal(t, http.StatusBadGateway, recorder.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, models.ErrorCodeWalletConnectFailed, body.Error.Code)
	assert.Equal(t, "Failed to connect to wallet", body.Error.Message)

	recorder = serve(engine, http.MethodGet, "/api/wallet-connection")
	var state wallet.State
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &state))
	assert.False(t, state.Connected)
	assert.Equal(t, "Failed to connect to wallet", state.Error)

	recorder = serve(engine, http.MethodPost, "/api/wallet-connection/disconnect")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHealthRoutes(t *testing.T) {
	engine, _ := setupEngine(t, wallet.Absent())

	recorder := serve(engine, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, services.HealthStatusDegraded, body.Status)
	assert.Contains(t, body.Services, "tracker_api")

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health/live").Code)
	recorder = serve(engine, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"data_source":"fallback"`)
}
