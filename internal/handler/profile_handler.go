package handler

import (
	"io"
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

// maxPhotoSize caps uploaded profile photos at 5 MB
const maxPhotoSize = 5 << 20

// ProfileHandler handles profile requests
type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetMyProfile returns the caller's full profile
// GET /api/v1/users/me/profile
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	profile, err := h.profileService.GetOwn(c.Request.Context(), userID)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusNotFound, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// UpdateMyProfile updates the caller's profile
// PUT /api/v1/users/me/profile
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var request model.ProfileUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, &request)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else if strings.Contains(err.Error(), "tag") || strings.Contains(err.Error(), "slug") || strings.Contains(err.Error(), "label") {
			utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		} else {
			h.logger.Error("failed to update profile", zap.Error(err), zap.Int("userID", userID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// GetProfile returns another user's profile as seen by the caller
// GET /api/v1/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	viewerID := middleware.CurrentUserID(c)

	profile, err := h.profileService.Get(c.Request.Context(), targetID, viewerID)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusNotFound, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// UploadPhoto stores a new profile photo for the caller
// POST /api/v1/users/me/profile/photo
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Photo file is required")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Photo is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Failed to read photo")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Failed to read photo")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Photo must be an image")
		return
	}

	media, err := h.profileService.UploadPhoto(c.Request.Context(), userID, content, fileHeader.Filename, contentType)
	if err != nil {
		h.logger.Error("photo upload failed", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusBadGateway, "Failed to store photo")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": media})
}

// DeletePhoto removes the caller's profile photo
// DELETE /api/v1/users/me/profile/photo
func (h *ProfileHandler) DeletePhoto(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.profileService.DeletePhoto(c.Request.Context(), userID); err != nil {
		h.logger.Error("photo delete failed", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}
