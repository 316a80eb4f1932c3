package restapi

import (
	"errors"
	"net/http"

	"walletctl/internal/app/port"
	"walletctl/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIWalletListResponse is the response shape for the wallet list endpoint.
type APIWalletListResponse struct {
	Data struct {
		Wallets []entity.WalletSnapshot `json:"wallets"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIWalletResponse is the response shape for the single-wallet endpoint.
type APIWalletResponse struct {
	Data struct {
		Wallet entity.WalletInspection `json:"wallet"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// WalletHandler handles the read-only wallet HTTP endpoints.
type WalletHandler struct {
	wallets port.WalletService
	logger  port.Logger
}

// NewWalletHandler creates a new WalletHandler instance.
func NewWalletHandler(wallets port.WalletService, logger port.Logger) *WalletHandler {
	return &WalletHandler{wallets: wallets, logger: logger}
}

// ListWalletsHandler handles GET /api/v1/wallets: all custody wallets with
// refreshed balances.
func (h *WalletHandler) ListWalletsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	wallets, err := h.wallets.List(ctx)
	if err != nil {
		h.logger.Error("Failed to list wallets for API response", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to list wallets"})
		return
	}

	response := APIWalletListResponse{StatusMessage: "ok"}
	response.Data.Wallets = wallets
	c.JSON(http.StatusOK, response)
}

// GetWalletHandler handles GET /api/v1/wallets/:walletAddress: one wallet's
// record, refreshed snapshot and transfer history.
func (h *WalletHandler) GetWalletHandler(c *gin.Context) {
	ctx := c.Request.Context()
	address := c.Param("walletAddress")

	inspection, err := h.wallets.Inspect(ctx, address)
	if err != nil {
		var notFound *entity.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		h.logger.Error("Failed to inspect wallet for API response", "address", address, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to inspect wallet"})
		return
	}

	response := APIWalletResponse{StatusMessage: "ok"}
	response.Data.Wallet = inspection
	c.JSON(http.StatusOK, response)
}
