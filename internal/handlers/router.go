package handlers

import (
	"solana-token-tracker/internal/services"
	"solana-token-tracker/internal/wallet"

	"github.com/gin-gonic/gin"
)

// Router handles HTTP routing setup
type Router struct {
	tokenHandler  *TokenHandler
	walletHandler *WalletHandler
	healthHandler *HealthHandler
}

// NewRouter creates a new Router instance with all handlers
func NewRouter(dataSource services.TokenDataSource, session *wallet.Session, healthHandler *HealthHandler) *Router {
	return &Router{
		tokenHandler:  NewTokenHandler(dataSource),
		walletHandler: NewWalletHandler(session),
		healthHandler: healthHandler,
	}
}

// SetupRoutes registers the API routes on group
func (r *Router) SetupRoutes(api *gin.RouterGroup) {
	api.GET("/trending-tokens", r.tokenHandler.GetTrendingTokens)
	api.GET("/wallet/:address", r.tokenHandler.GetWalletInfo)

	connection := api.Group("/wallet-connection")
	{
		connection.GET("", r.walletHandler.GetConnection)
		connection.POST("/connect", r.walletHandler.Connect)
		connection.POST("/disconnect", r.walletHandler.Disconnect)
	}
}

// SetupHealthRoutes configures health check routes
func (r *Router) SetupHealthRoutes(engine *gin.Engine) {
	health := engine.Group("/health")
	{
		health.GET("", r.healthHandler.GetHealth)
		health.GET("/live", r.healthHandler.GetLiveness)
		health.GET("/ready", r.healthHandler.GetReadiness)
	}
}
