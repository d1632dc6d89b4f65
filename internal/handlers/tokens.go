package handlers

import (
	"net/http"
	"strings"

	"solana-token-tracker/internal/models"
	"solana-token-tracker/internal/services"
	"solana-token-tracker/internal/validation"
	"solana-token-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	if err := validation.RegisterGinValidators(); err != nil {
		panic(err)
	}
}

// TokenHandler serves the trending list and wallet lookups
type TokenHandler struct {
	dataSource services.TokenDataSource
}

// NewTokenHandler creates a new TokenHandler instance
func NewTokenHandler(dataSource services.TokenDataSource) *TokenHandler {
	return &TokenHandler{
		dataSource: dataSource,
	}
}

// GetTrendingTokens handles GET /api/trending-tokens
func (h *TokenHandler) GetTrendingTokens(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	result := h.dataSource.FetchTrendingTokens(c.Request.Context())

	log.Info("Trending tokens served",
		zap.Int("token_count", len(result.Data)),
		zap.String("source", string(result.Source)),
		zap.String("fallback_reason", string(result.FallbackReason)),
	)

	c.JSON(http.StatusOK, models.TrendingTokensResponse{
		Tokens:         result.Data,
		Source:         result.Source,
		FallbackReason: result.FallbackReason,
	})
}

// GetWalletInfo handles GET /api/wallet/:address. The address is
// format-checked before any network call.
func (h *TokenHandler) GetWalletInfo(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	var uri models.WalletAddressURI
	if err := c.ShouldBindUri(&uri); err != nil {
		models.HandleError(c, models.NewInvalidWalletError(c.Param("address")), log)
		return
	}
	address := strings.TrimSpace(uri.Address)

	result := h.dataSource.FetchWalletInfo(c.Request.Context(), address)

	log.Info("Wallet info served",
		zap.String("wallet_address", address),
		zap.Int("token_count", len(result.Data.TokenBalances)),
		zap.String("source", string(result.Source)),
		zap.String("fallback_reason", string(result.FallbackReason)),
	)

	c.JSON(http.StatusOK, models.WalletInfoResponse{
		Wallet:         result.Data,
		Source:         result.Source,
		FallbackReason: result.FallbackReason,
	})
}
