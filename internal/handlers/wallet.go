package handlers

import (
	"errors"
	"net/http"

	"solana-token-tracker/internal/models"
	"solana-token-tracker/internal/wallet"
	"solana-token-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WalletHandler exposes the wallet connection session
type WalletHandler struct {
	session *wallet.Session
}

// NewWalletHandler creates a new WalletHandler instance
func NewWalletHandler(session *wallet.Session) *WalletHandler {
	return &WalletHandler{session: session}
}

// GetConnection handles GET /api/wallet-connection
func (h *WalletHandler) GetConnection(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.State())
}

// Connect handles POST /api/wallet-connection/connect
func (h *WalletHandler) Connect(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	state, err := h.session.Connect(c.Request.Context())
	if err != nil {
		models.HandleError(c, walletError(err, models.ErrorCodeWalletConnectFailed, state), log)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Disconnect handles POST /api/wallet-connection/disconnect
func (h *WalletHandler) Disconnect(c *gin.Context) {
	log := logger.GetLogger().WithContext(c.Request.Context())

	state, err := h.session.Disconnect(c.Request.Context())
	if err != nil {
		models.HandleError(c, walletError(err, models.ErrorCodeWalletDisconnectFailed, state), log)
		return
	}
	c.JSON(http.StatusOK, state)
}

func walletError(err error, code models.ErrorCode, state wallet.State) *models.AppError {
	if errors.Is(err, wallet.ErrNotInstalled) {
		return models.NewAppErrorWithDetails(
			models.ErrorCodeWalletNotInstalled,
			"Wallet is not installed",
			"Install a wallet from "+state.InstallURL,
		)
	}
	return models.NewAppErrorWithCause(code, state.Error, err)
}
