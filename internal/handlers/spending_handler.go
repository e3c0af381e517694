package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momopress/internal/budget"
	"momopress/internal/services"
)

// SpendingHandler serves the spending overview.
type SpendingHandler struct {
	statsService services.StatsServicer
	now          Clock
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(statsService services.StatsServicer, now Clock) *SpendingHandler {
	return &SpendingHandler{statsService: statsService, now: now}
}

// OverviewQuery selects the overview period. Monthly is the default.
type OverviewQuery struct {
	Period string `form:"period" binding:"omitempty,period"`
}

// GetOverview returns the per-category spending of the current period.
// @Summary     Spending overview
// @Description Balance, total and per-category spending, chart buckets and counts
// @Tags        spending
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "weekly or monthly (default monthly)"
// @Success     200 {object} services.SpendingOverview "Overview"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /spending/overview [get]
func (h *SpendingHandler) GetOverview(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q OverviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	period := budget.PeriodMonthly
	if p, ok := budget.ParsePeriod(q.Period); ok {
		period = p
	}

	overview, err := h.statsService.Overview(c.Request.Context(), phone, period, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
