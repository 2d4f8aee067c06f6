package handler

import (
	"net/http"
	"strings"

	"github.com/connecthq/connect/internal/middleware"
	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/service"
	"github.com/connecthq/connect/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles account management requests
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetMe returns the caller's account
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// UpdateMe updates the caller's account
// PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var request model.UserUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, &request)
	if err != nil {
		if strings.Contains(err.Error(), "already in use") {
			utils.SendErrorResponse(c, http.StatusConflict, err.Error())
		} else if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			h.logger.Error("failed to update user", zap.Error(err), zap.Int("userID", userID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to update account")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// ChangePassword changes the caller's password
// PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var request model.UserChangePassword
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, &request); err != nil {
		if strings.Contains(err.Error(), "incorrect") {
			utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		} else {
			h.logger.Error("failed to change password", zap.Error(err), zap.Int("userID", userID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// DeactivateMe disables the caller's account
// DELETE /api/v1/users/me
func (h *UserHandler) DeactivateMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.userService.Deactivate(c.Request.Context(), userID); err != nil {
		h.logger.Error("failed to deactivate user", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to deactivate account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}

// List returns a page of user accounts
// GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	params := utils.ParsePaginationParams(c, 20, 100)

	users, total, err := h.userService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	utils.SendPaginatedResponse(c, http.StatusOK, users, total, params.Page, params.Limit)
}
