package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solana-token-tracker/internal/config"
	"solana-token-tracker/internal/models"
	"solana-token-tracker/pkg/logger"
	"solana-token-tracker/pkg/metrics"

	"go.uber.org/zap"
)

// DefaultRequestTimeout bounds every call to the tracker API
const DefaultRequestTimeout = 10 * time.Second

const (
	trendingEndpoint = "trending-tokens"
	walletEndpoint   = "wallet"
)

// DataSource fetches token and wallet data from the tracker API and falls
// back to fixed data whenever the API is unconfigured or fails.
type DataSource struct {
	config     *config.TrackerConfig
	client     *http.Client
	timeout    time.Duration
	metrics    *metrics.MetricsCollector
	prometheus *metrics.Prometheus
}

// DataSourceOption configures a DataSource
type DataSourceOption func(*DataSource)

// WithHTTPClient sets a custom http.Client
func WithHTTPClient(client *http.Client) DataSourceOption {
	return func(ds *DataSource) {
		ds.client = client
	}
}

// WithMetrics records upstream calls and fallbacks on mc
func WithMetrics(mc *metrics.MetricsCollector) DataSourceOption {
	return func(ds *DataSource) {
		ds.metrics = mc
	}
}

// WithPrometheus records upstream calls and fallbacks on p
func WithPrometheus(p *metrics.Prometheus) DataSourceOption {
	return func(ds *DataSource) {
		ds.prometheus = p
	}
}

// NewDataSource creates a DataSource for cfg. A zero timeout in cfg means
// DefaultRequestTimeout.
func NewDataSource(cfg *config.TrackerConfig, opts ...DataSourceOption) *DataSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	ds := &DataSource{
		config:  cfg,
		client:  &http.Client{},
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(ds)
	}
	return ds
}

// FetchTrendingTokens returns the trending token list. The result is never
// empty; failures are reported through the Result tag only.
func (ds *DataSource) FetchTrendingTokens(ctx context.Context) *models.Result[[]models.TrendingToken] {
	log := logger.GetLogger().WithContext(ctx)
	ds.logAPICall(log, "getTrendingTokens", nil)

	if !ds.config.IsConfigured() {
		return ds.fallbackTrending(log, models.ReasonNotConfigured, nil)
	}

	var tokens []models.TrendingToken
	if reason, err := ds.get(ctx, trendingEndpoint, ds.endpointURL(trendingEndpoint), &tokens); err != nil {
		return ds.fallbackTrending(log, reason, err)
	}
	if len(tokens) == 0 {
		return ds.fallbackTrending(log, models.ReasonEmptyResponse, errors.New("API returned no trending tokens"))
	}

	ds.logAPICall(log, "getTrendingTokens response", tokens)
	return models.Live(tokens)
}

// FetchWalletInfo returns SOL and token balances for address. The address is
// not format-checked here; callers validate user input first.
func (ds *DataSource) FetchWalletInfo(ctx context.Context, address string) *models.Result[models.WalletInfo] {
	log := logger.GetLogger().WithContext(ctx)
	ds.logAPICall(log, "getWalletInfo", map[string]string{"address": address})

	if !ds.config.IsConfigured() {
		return ds.fallbackWallet(log, address, models.ReasonNotConfigured, nil)
	}

	var body *models.WalletInfo
	walletURL := ds.endpointURL(walletEndpoint, url.PathEscape(address))
	if reason, err := ds.get(ctx, walletEndpoint, walletURL, &body); err != nil {
		return ds.fallbackWallet(log, address, reason, err)
	}
	// null and {} carry no wallet data at all
	if body == nil || (body.Address == "" && body.SolBalance == 0 && body.TokenBalances == nil) {
		return ds.fallbackWallet(log, address, models.ReasonEmptyResponse, errors.New("API returned no wallet data"))
	}

	wallet := *body
	if wallet.Address == "" {
		wallet.Address = address
	}
	if wallet.TokenBalances == nil {
		wallet.TokenBalances = []models.TokenBalance{}
	}

	ds.logAPICall(log, "getWalletInfo response", wallet)
	return models.Live(wallet)
}

// get performs one GET against the tracker API and decodes the JSON body
// into out. On failure it returns the fallback reason alongside the error.
func (ds *DataSource) get(ctx context.Context, endpoint, target string, out interface{}) (models.FallbackReason, error) {
	ctx, cancel := context.WithTimeout(ctx, ds.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.ReasonTransport, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ds.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+ds.config.APIKey)
	}

	start := time.Now()
	resp, err := ds.client.Do(req)
	if err != nil {
		ds.recordUpstream(endpoint, "error", time.Since(start), false)
		if isTimeout(err) {
			return models.ReasonTimeout, fmt.Errorf("%s request timed out after %s: %w", endpoint, ds.timeout, err)
		}
		return models.ReasonTransport, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		ds.recordUpstream(endpoint, "http_status", time.Since(start), false)
		return models.ReasonHTTPStatus, fmt.Errorf("API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		ds.recordUpstream(endpoint, "decode_error", time.Since(start), false)
		if isTimeout(err) {
			return models.ReasonTimeout, fmt.Errorf("%s response timed out after %s: %w", endpoint, ds.timeout, err)
		}
		return models.ReasonDecode, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	ds.recordUpstream(endpoint, "success", time.Since(start), true)
	return models.ReasonNone, nil
}

func (ds *DataSource) endpointURL(parts ...string) string {
	return strings.TrimRight(ds.config.BaseURL, "/") + "/" + strings.Join(parts, "/")
}

func (ds *DataSource) fallbackTrending(log *logger.Logger, reason models.FallbackReason, cause error) *models.Result[[]models.TrendingToken] {
	ds.logFallback(log, trendingEndpoint, reason, cause)
	return models.Fallback(FallbackTrendingTokens(), reason, cause)
}

func (ds *DataSource) fallbackWallet(log *logger.Logger, address string, reason models.FallbackReason, cause error) *models.Result[models.WalletInfo] {
	ds.logFallback(log, walletEndpoint, reason, cause)
	return models.Fallback(FallbackWalletInfo(address), reason, cause)
}

func (ds *DataSource) logFallback(log *logger.Logger, endpoint string, reason models.FallbackReason, cause error) {
	if ds.metrics != nil {
		ds.metrics.RecordFallback()
	}
	ds.prometheus.ObserveFallback(endpoint, string(reason))

	log = log.WithFields(map[string]interface{}{
		"endpoint": endpoint,
		"reason":   string(reason),
	})

	if reason == models.ReasonNotConfigured {
		log.Debug("Tracker API not configured, serving fallback data")
		return
	}

	log.Warn("Tracker API call failed, serving fallback data", zap.Error(cause))
}

func (ds *DataSource) logAPICall(log *logger.Logger, name string, payload interface{}) {
	if ds.config.Debug {
		log.LogAPICall(name, payload)
	}
}

func (ds *DataSource) recordUpstream(endpoint, outcome string, duration time.Duration, success bool) {
	if ds.metrics != nil {
		ds.metrics.RecordUpstreamCall(duration, success)
	}
	ds.prometheus.ObserveUpstream(endpoint, outcome, duration)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
