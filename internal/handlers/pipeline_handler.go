package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"momopress/internal/models"
	"momopress/internal/services"
)

// PipelineHandler accepts SMS uploaded by the device for later syncs.
type PipelineHandler struct {
	inboxService services.InboxServicer
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(inboxService services.InboxServicer) *PipelineHandler {
	return &PipelineHandler{inboxService: inboxService}
}

// UploadedMessage is one SMS as read on the device.
type UploadedMessage struct {
	Sender    string    `json:"sender" binding:"required,max=64"`
	Body      string    `json:"body" binding:"required"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

// StageMessagesRequest is a batch of SMS owned by one account.
type StageMessagesRequest struct {
	Phone    string            `json:"phone" binding:"required,msisdn"`
	Messages []UploadedMessage `json:"messages" binding:"required,min=1,max=1000,dive"`
}

// StageMessagesResponse reports how many messages were new.
type StageMessagesResponse struct {
	Received int `json:"received"`
	Staged   int `json:"staged"`
}

// StageMessages stores an uploaded batch in the inbox.
// @Summary     Upload messages
// @Description Stage raw SMS for the next sync. Messages already staged are ignored.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Device key"
// @Param       request body StageMessagesRequest true "Messages"
// @Success     202 {object} StageMessagesResponse "Batch accepted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/messages [post]
func (h *PipelineHandler) StageMessages(c *gin.Context) {
	var req StageMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	msgs := make([]models.RawMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, models.RawMessage{Sender: m.Sender, Body: m.Body, Timestamp: m.Timestamp})
	}

	staged, err := h.inboxService.Stage(c.Request.Context(), req.Phone, msgs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, StageMessagesResponse{Received: len(msgs), Staged: staged})
}
