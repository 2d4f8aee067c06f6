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

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notifService *service.NotificationService
	logger       *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		logger:       logger,
	}
}

// List returns a page of the caller's notifications
// GET /api/v1/users/me/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	params := utils.ParsePaginationParams(c, 20, 100)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notifService.List(c.Request.Context(), userID, params.Page, params.Limit, unreadOnly)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list notifications")
		return
	}

	utils.SendPaginatedResponse(c, http.StatusOK, notifications, total, params.Page, params.Limit)
}

// CountUnread returns the caller's unread notification count
// GET /api/v1/users/me/notifications/count
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	count, err := h.notifService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to count notifications", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, model.NotificationCountResponse{Count: count})
}

// MarkRead marks a single notification as read
// PUT /api/v1/users/me/notifications/:notificationID/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notificationID"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	if err := h.notifService.MarkRead(c.Request.Context(), id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			h.logger.Error("failed to mark notification read", zap.Error(err), zap.Int("id", id))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to mark notification read")
		}
		return
	}

	c.JSON(http.StatusOK, model.NotificationMarkResponse{Success: true, MarkedCount: 1})
}

// MarkAllRead marks all of the caller's notifications as read
// PUT /api/v1/users/me/notifications/read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	count, err := h.notifService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to mark notifications read", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to mark notifications read")
		return
	}

	c.JSON(http.StatusOK, model.NotificationMarkResponse{Success: true, MarkedCount: count})
}
