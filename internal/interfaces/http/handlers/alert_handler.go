package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wallet-sentinel.backend/internal/domain/entities"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
	"wallet-sentinel.backend/internal/interfaces/http/response"
	"wallet-sentinel.backend/internal/usecases"
)

// AlertHandler handles alert and alert-rule endpoints
type AlertHandler struct {
	alertUsecase *usecases.AlertUsecase
	analysis     *usecases.AnalysisUsecase
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertUsecase *usecases.AlertUsecase, analysis *usecases.AnalysisUsecase) *AlertHandler {
	return &AlertHandler{alertUsecase: alertUsecase, analysis: analysis}
}

// List lists alerts
// GET /api/v1/alerts?walletAddress=&chain=&status=&limit=
func (h *AlertHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	alerts, err := h.alertUsecase.ListAlerts(c.Request.Context(), entities.AlertFilter{
		WalletAddress: c.Query("walletAddress"),
		Chain:         entities.ChainID(c.Query("chain")),
		Status:        entities.AlertStatus(c.Query("status")),
		Limit:         limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"alerts": alerts})
}

// Get returns one alert
// GET /api/v1/alerts/:id
func (h *AlertHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid alert id")
		return
	}

	alert, err := h.alertUsecase.GetAlert(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, alert)
}

// Resolve marks an alert resolved
// POST /api/v1/alerts/:id/resolve
func (h *AlertHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid alert id")
		return
	}

	alert, err := h.alertUsecase.ResolveAlert(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Alert resolved",
		"alert":   alert,
	})
}

// Patterns aggregates stored alerts
// GET /api/v1/alerts/stats/patterns
func (h *AlertHandler) Patterns(c *gin.Context) {
	patterns, err := h.analysis.AlertPatterns(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, patterns)
}

// ListRules lists alert rules
// GET /api/v1/alerts/rules?enabledOnly=
func (h *AlertHandler) ListRules(c *gin.Context) {
	enabledOnly, _ := strconv.ParseBool(c.DefaultQuery("enabledOnly", "true"))

	rules, err := h.alertUsecase.ListRules(c.Request.Context(), enabledOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

// CreateRule creates an alert rule
// POST /api/v1/alerts/rules
func (h *AlertHandler) CreateRule(c *gin.Context) {
	var input entities.CreateAlertRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	rule, err := h.alertUsecase.CreateRule(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rule)
}

// UpdateRule updates an alert rule
// PUT /api/v1/alerts/rules/:id
func (h *AlertHandler) UpdateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	var input entities.UpdateAlertRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	rule, err := h.alertUsecase.UpdateRule(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rule)
}

// DeleteRule deletes an alert rule
// DELETE /api/v1/alerts/rules/:id
func (h *AlertHandler) DeleteRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid rule id")
		return
	}

	if err := h.alertUsecase.DeleteRule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Rule deleted"})
}
