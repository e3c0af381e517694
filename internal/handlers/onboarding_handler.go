package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momopress/internal/logger"
	"momopress/internal/models"
	"momopress/internal/services"
)

// OnboardingHandler sets the first budget and imports the message history.
type OnboardingHandler struct {
	budgetService services.BudgetServicer
	syncService   services.SyncServicer
	auditService  services.AuditServicer
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(budgetService services.BudgetServicer, syncService services.SyncServicer, auditService services.AuditServicer) *OnboardingHandler {
	return &OnboardingHandler{budgetService: budgetService, syncService: syncService, auditService: auditService}
}

// OnboardingRequest holds the general monthly limit chosen at setup.
type OnboardingRequest struct {
	GeneralLimit int64 `json:"general_limit" binding:"required,gt=0"`
}

// OnboardingResponse carries the stored limits and the result of the first sync.
type OnboardingResponse struct {
	Limits models.BudgetLimits  `json:"limits"`
	Sync   *services.SyncResult `json:"sync"`
}

// Complete stores the general limit and runs a full sync.
// @Summary     Complete onboarding
// @Description Set the general monthly limit and import every past MoMo message
// @Tags        onboarding
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body OnboardingRequest true "General limit"
// @Success     200 {object} OnboardingResponse "Limits and sync summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Messages could not be read"
// @Router      /onboarding [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	ctx := c.Request.Context()
	limits, err := h.budgetService.SetGeneralLimit(ctx, phone, req.GeneralLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.syncService.Sync(ctx, phone, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.Skipped {
		logger.For(logger.ComponentHTTP).Warnw("Onboarding import skipped, another sync is running", "phone", phone)
	}

	h.auditService.Log(ctx, phone, "ONBOARDING", "budget_limits", phone, c.ClientIP(),
		map[string]interface{}{"general": req.GeneralLimit, "inserted": result.Inserted, "sync_skipped": result.Skipped})

	c.JSON(http.StatusOK, OnboardingResponse{Limits: *limits, Sync: result})
}
