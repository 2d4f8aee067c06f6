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

// RequestHandler handles collaboration request endpoints
type RequestHandler struct {
	requestService *service.RequestService
	logger         *zap.Logger
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *service.RequestService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		logger:         logger,
	}
}

// Create posts a new collaboration request
// POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var request model.RequestCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.requestService.Create(c.Request.Context(), userID, &request)
	if err != nil {
		if strings.Contains(err.Error(), "tag") || strings.Contains(err.Error(), "slug") || strings.Contains(err.Error(), "label") {
			utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		} else {
			h.logger.Error("failed to create request", zap.Error(err), zap.Int("userID", userID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to create request")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Browse lists public requests ranked for the caller
// GET /api/v1/requests
func (h *RequestHandler) Browse(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)
	params := utils.ParsePaginationParams(c, 20, 100)

	filter := model.RequestFilter{
		Search:   c.Query("search"),
		TagSlugs: utils.ParseSlugList(c, "tags"),
		Page:     params.Page,
		Limit:    params.Limit,
	}

	requests, total, err := h.requestService.Browse(c.Request.Context(), viewerID, filter)
	if err != nil {
		h.logger.Error("failed to browse requests", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list requests")
		return
	}

	utils.SendPaginatedResponse(c, http.StatusOK, requests, total, params.Page, params.Limit)
}

// Get returns a single request
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	viewerID := middleware.CurrentUserID(c)

	request, err := h.requestService.Get(c.Request.Context(), id, viewerID)
	if err != nil {
		utils.SendErrorResponse(c, http.StatusNotFound, "Request not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": request})
}

// ListMine returns all of the caller's requests
// GET /api/v1/users/me/requests
func (h *RequestHandler) ListMine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	requests, err := h.requestService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list own requests", zap.Error(err), zap.Int("userID", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// ListByUser returns another user's public requests
// GET /api/v1/profiles/:id/requests
func (h *RequestHandler) ListByUser(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	requests, err := h.requestService.ListByUser(c.Request.Context(), targetID)
	if err != nil {
		h.logger.Error("failed to list user requests", zap.Error(err), zap.Int("targetID", targetID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// Update modifies one of the caller's requests
// PUT /api/v1/requests/:id
func (h *RequestHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	var request model.RequestUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.requestService.Update(c.Request.Context(), id, userID, &request)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else if strings.Contains(err.Error(), "tag") || strings.Contains(err.Error(), "visibility") {
			utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		} else {
			h.logger.Error("failed to update request", zap.Error(err), zap.Int("id", id))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to update request")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Delete removes one of the caller's requests
// DELETE /api/v1/requests/:id
func (h *RequestHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	if err := h.requestService.Delete(c.Request.Context(), id, userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			h.logger.Error("failed to delete request", zap.Error(err), zap.Int("id", id))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to delete request")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted"})
}
