package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momopress/internal/budget"
	"momopress/internal/models"
	"momopress/internal/pagination"
	"momopress/internal/services"
)

// TransactionHandler serves the merged transaction history.
type TransactionHandler struct {
	statsService services.StatsServicer
	now          Clock
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(statsService services.StatsServicer, now Clock) *TransactionHandler {
	return &TransactionHandler{statsService: statsService, now: now}
}

// HistoryQuery holds the history filters.
type HistoryQuery struct {
	Period   string `form:"period" binding:"omitempty,period"`
	Category string `form:"category" binding:"omitempty,category"`
	Search   string `form:"search" binding:"max=100"`
}

func (q HistoryQuery) filter() services.HistoryFilter {
	f := services.HistoryFilter{Search: q.Search}
	if p, ok := budget.ParsePeriod(q.Period); ok {
		f.Period = &p
	}
	if q.Category != "" {
		cat := models.Category(q.Category)
		f.Category = &cat
	}
	return f
}

// ListTransactions returns every transaction of the account, newest first.
// @Summary     List transactions
// @Description Merge all transaction kinds, newest first, with received and sent totals
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       period    query string false "weekly or monthly"
// @Param       category  query string false "Category filter"
// @Param       search    query string false "Counterparty or category search"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} services.History "Paginated history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	history, err := h.statsService.History(c.Request.Context(), phone, q.filter(), page, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
