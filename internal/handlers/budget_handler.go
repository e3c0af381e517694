package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momopress/internal/budget"
	"momopress/internal/models"
	"momopress/internal/services"
)

// BudgetHandler handles budget limits and alerts.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
	now           Clock
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer, now Clock) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService, now: now}
}

// UpdateLimitsRequest holds the monthly limits. Zero disables a limit.
type UpdateLimitsRequest struct {
	General         int64 `json:"general" binding:"min=0"`
	MoneyTransfer   int64 `json:"money_transfer" binding:"min=0"`
	BankTransfer    int64 `json:"bank_transfer" binding:"min=0"`
	MerchantPayment int64 `json:"merchant_payment" binding:"min=0"`
	Bundle          int64 `json:"bundle" binding:"min=0"`
	Utility         int64 `json:"utility" binding:"min=0"`
	Agent           int64 `json:"agent" binding:"min=0"`
	Other           int64 `json:"other" binding:"min=0"`
}

func (r UpdateLimitsRequest) toModel(phone string) models.BudgetLimits {
	return models.BudgetLimits{
		Phone:           phone,
		General:         r.General,
		MoneyTransfer:   r.MoneyTransfer,
		BankTransfer:    r.BankTransfer,
		MerchantPayment: r.MerchantPayment,
		Bundle:          r.Bundle,
		Utility:         r.Utility,
		Agent:           r.Agent,
		Other:           r.Other,
	}
}

// LimitsResponse is returned after a limits update.
type LimitsResponse struct {
	Limits models.BudgetLimits `json:"limits"`
	Alerts []budget.Alert      `json:"alerts"`
}

// GetLimits returns the configured limits.
// @Summary     Get budget limits
// @Description Get the monthly limits of the account. Unset limits are zero.
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.BudgetLimits "Limits"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/limits [get]
func (h *BudgetHandler) GetLimits(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limits, err := h.budgetService.GetLimits(c.Request.Context(), phone)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"limits": limits})
}

// UpdateLimits replaces the limits and re-checks alerts right away.
// @Summary     Update budget limits
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateLimitsRequest true "Monthly limits"
// @Success     200 {object} LimitsResponse "Stored limits and current alerts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/limits [put]
func (h *BudgetHandler) UpdateLimits(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	ctx := c.Request.Context()
	limits, err := h.budgetService.UpsertLimits(ctx, req.toModel(phone))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, phone, "UPDATE_LIMITS", "budget_limits", phone, c.ClientIP(),
		map[string]interface{}{"general": req.General})

	alerts, err := h.budgetService.CheckAlerts(ctx, phone, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if alerts == nil {
		alerts = []budget.Alert{}
	}

	c.JSON(http.StatusOK, LimitsResponse{Limits: *limits, Alerts: alerts})
}

// GetAlerts evaluates month-to-date spending against the limits.
// @Summary     Get budget alerts
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} budget.Alert "Alerts, general first"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/alerts [get]
func (h *BudgetHandler) GetAlerts(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alerts, err := h.budgetService.CheckAlerts(c.Request.Context(), phone, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if alerts == nil {
		alerts = []budget.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
