package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momopress/internal/services"
)

// SyncHandler triggers syncs and reports their checkpoint.
type SyncHandler struct {
	syncService       services.SyncServicer
	checkpointService services.CheckpointServicer
	auditService      services.AuditServicer
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService services.SyncServicer, checkpointService services.CheckpointServicer, auditService services.AuditServicer) *SyncHandler {
	return &SyncHandler{syncService: syncService, checkpointService: checkpointService, auditService: auditService}
}

// SyncQuery selects the sync mode. Incremental is the default.
type SyncQuery struct {
	Mode string `form:"mode" binding:"omitempty,sync_mode"`
}

// Sync runs one sync cycle for the account.
// @Summary     Run a sync
// @Description Read new MoMo messages, record them and check budgets. A call made
// @Description while another sync is running returns skipped=true.
// @Tags        sync
// @Produce     json
// @Security    BearerAuth
// @Param       mode query string false "full or incremental (default incremental)"
// @Success     200 {object} services.SyncResult "Sync summary"
// @Failure     400 {object} ErrorResponse "Invalid mode"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Messages could not be read"
// @Router      /sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q SyncQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	incremental := q.Mode != "full"

	result, err := h.syncService.Sync(c.Request.Context(), phone, incremental)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !result.Skipped {
		h.auditService.Log(c.Request.Context(), phone, "SYNC", "sync_checkpoint", phone, c.ClientIP(),
			map[string]interface{}{"incremental": incremental, "inserted": result.Inserted, "failed": result.Failed})
	}

	c.JSON(http.StatusOK, result)
}

// Status returns the sync checkpoint of the account.
// @Summary     Sync status
// @Tags        sync
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.SyncCheckpoint "Checkpoint"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No sync has completed yet"
// @Router      /sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cp, err := h.checkpointService.Get(c.Request.Context(), phone)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkpoint": cp})
}
