package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/interfaces/http/response"
	"wallet-sentinel.backend/internal/usecases"
)

// WalletHandler handles monitored wallet endpoints
type WalletHandler struct {
	walletUsecase *usecases.WalletUsecase
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// Register registers a wallet for monitoring
// POST /api/v1/wallets
func (h *WalletHandler) Register(c *gin.Context) {
	var input entities.RegisterWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	wallet, err := h.walletUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Wallet registered",
		"wallet":  wallet,
	})
}

// List lists monitored wallets
// GET /api/v1/wallets?chain=&activeOnly=
func (h *WalletHandler) List(c *gin.Context) {
	chain := entities.ChainID(c.Query("chain"))
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))

	wallets, err := h.walletUsecase.List(c.Request.Context(), chain, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// GetBalance reads a wallet's balance
// GET /api/v1/wallets/:address/balance?chain=
func (h *WalletHandler) GetBalance(c *gin.Context) {
	address := c.Param("address")
	chain := entities.ChainID(c.Query("chain"))
	if chain == "" {
		response.BadRequest(c, "chain query parameter is required")
		return
	}

	reading, err := h.walletUsecase.GetBalance(c.Request.Context(), address, chain)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, reading)
}

// Deactivate stops monitoring a wallet
// DELETE /api/v1/wallets/:address?chain=
func (h *WalletHandler) Deactivate(c *gin.Context) {
	address := c.Param("address")
	chain := entities.ChainID(c.Query("chain"))
	if chain == "" {
		response.BadRequest(c, "chain query parameter is required")
		return
	}

	if err := h.walletUsecase.Deactivate(c.Request.Context(), address, chain); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Wallet deactivated"})
}
