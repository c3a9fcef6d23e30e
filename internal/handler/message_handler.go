package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/campus-backend/internal/middleware"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/response"
	"github.com/edustack/campus-backend/internal/service"
	"github.com/edustack/campus-backend/internal/validator"
)

// MessageHandler handles internal messaging endpoints.
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// POST /api/v1/messages
// Delivers to every recipient and publishes an inbox event per recipient.
func (h *MessageHandler) Send(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req model.SendMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": message})
}

// Inbox godoc
// GET /api/v1/messages/inbox?unread_only=true
func (h *MessageHandler) Inbox(c *gin.Context) {
	actor := middleware.GetActor(c)
	unreadOnly := c.Query("unread_only") == "true"

	page, perPage, limit, offset := paginationParams(c)
	entries, total, err := h.messageService.Inbox(c.Request.Context(), actor, unreadOnly, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"messages": entries}, buildPagination(page, perPage, total))
}

// Sent godoc
// GET /api/v1/messages/sent
func (h *MessageHandler) Sent(c *gin.Context) {
	actor := middleware.GetActor(c)

	page, perPage, limit, offset := paginationParams(c)
	messages, total, err := h.messageService.Sent(c.Request.Context(), actor, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"messages": messages}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/messages/:id
func (h *MessageHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": message})
}

// MarkRead godoc
// POST /api/v1/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	actor := middleware.GetActor(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.MarkRead(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "marked as read"})
}
