package services

import (
	"context"

	"solana-token-tracker/internal/models"
)

// TokenDataSource supplies the read-only queries used by the handlers and CLI.
// Implementations never fail: every error resolves to fallback data.
type TokenDataSource interface {
	FetchTrendingTokens(ctx context.Context) *models.Result[[]models.TrendingToken]
	FetchWalletInfo(ctx context.Context, address string) *models.Result[models.WalletInfo]
}

// RPCHealthChecker reports whether the Solana RPC endpoint responds
type RPCHealthChecker interface {
	IsHealthy(ctx context.Context) error
}
