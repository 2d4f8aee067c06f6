package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/connecthq/connect/internal/middleware"
	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/service"
	"github.com/connecthq/connect/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler handles conversation and message endpoints
type MessageHandler struct {
	messageService *service.MessageService
	logger         *zap.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		logger:         logger,
	}
}

// StartConversation opens or returns the conversation with another user
// POST /api/v1/conversations
func (h *MessageHandler) StartConversation(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var request model.ConversationCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.messageService.StartConversation(c.Request.Context(), userID, request.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else if strings.Contains(err.Error(), "yourself") || strings.Contains(err.Error(), "does not accept") {
			utils.SendErrorResponse(c, http.StatusForbidden, err.Error())
		} else {
			h.logger.Error("failed to start conversation", zap.Error(err), zap.Int("userID", userID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to start conversation")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": conv})
}

// ListConversations returns the caller's inbox
// GET /api/v1/conversations
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	conversations, err := h.messageService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list conversations", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": conversations})
}

// SendMessage appends a message to a conversation
// POST /api/v1/conversations/:id/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	var request model.MessageCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	request.ConversationID = conversationID

	msg, err := h.messageService.SendMessage(c.Request.Context(), userID, &request)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			h.logger.Error("failed to send message", zap.Error(err),
				zap.Int("conversationID", conversationID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": msg})
}

// ListMessages returns a page of a conversation's messages
// GET /api/v1/conversations/:id/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	userID := middleware.CurrentUserID(c)
	params := utils.ParsePaginationParams(c, 50, 200)

	messages, total, err := h.messageService.ListMessages(c.Request.Context(), conversationID, userID, params.Page, params.Limit)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			h.logger.Error("failed to list messages", zap.Error(err),
				zap.Int("conversationID", conversationID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list messages")
		}
		return
	}

	utils.SendPaginatedResponse(c, http.StatusOK, messages, total, params.Page, params.Limit)
}

// MarkRead marks the caller's incoming messages as read
// PUT /api/v1/conversations/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	count, err := h.messageService.MarkRead(c.Request.Context(), conversationID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			h.logger.Error("failed to mark messages read", zap.Error(err),
				zap.Int("conversationID", conversationID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to mark messages read")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_count": count})
}
