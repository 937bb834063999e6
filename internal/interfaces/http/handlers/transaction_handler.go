package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/domain/repositories"
	"wallet-sentinel.backend/internal/interfaces/http/response"
	"wallet-sentinel.backend/internal/usecases"
)

// SyncRequest identifies the wallet/chain pair to sync
type SyncRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	Chain         string `json:"chain" binding:"required"`
}

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	txRepo      repositories.TransactionRepository
	coordinator *usecases.IngestionCoordinator
	analysis    *usecases.AnalysisUsecase
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txRepo repositories.TransactionRepository, coordinator *usecases.IngestionCoordinator, analysis *usecases.AnalysisUsecase) *TransactionHandler {
	return &TransactionHandler{txRepo: txRepo, coordinator: coordinator, analysis: analysis}
}

// List lists stored transactions
// GET /api/v1/transactions?walletAddress=&chain=&limit=
func (h *TransactionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	txs, err := h.txRepo.List(c.Request.Context(), entities.TransactionFilter{
		WalletAddress: c.Query("walletAddress"),
		Chain:         entities.ChainID(c.Query("chain")),
		Limit:         limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": txs})
}

// Get returns one transaction by hash
// GET /api/v1/transactions/:hash
func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.txRepo.GetByHash(c.Request.Context(), c.Param("hash"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tx)
}

// Sync runs the ingestion pipeline for one wallet
// POST /api/v1/transactions/sync
func (h *TransactionHandler) Sync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.coordinator.Sync(c.Request.Context(), req.WalletAddress, entities.ChainID(req.Chain))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Analyze produces the analysis payload for one wallet
// POST /api/v1/transactions/analyze
func (h *TransactionHandler) Analyze(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	analysis, err := h.analysis.AnalyzeWallet(c.Request.Context(), req.WalletAddress, entities.ChainID(req.Chain))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, analysis)
}

// Summary reports stored transaction totals
// GET /api/v1/transactions/stats/summary
func (h *TransactionHandler) Summary(c *gin.Context) {
	summary, err := h.analysis.TransactionSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}
