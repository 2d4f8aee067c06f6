package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/service"
	"github.com/connecthq/connect/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TagHandler handles tag catalog endpoints
type TagHandler struct {
	tagService *service.TagService
	logger     *zap.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService *service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// List returns catalog tags matching a search term
// GET /api/v1/tags
func (h *TagHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	tags, err := h.tagService.List(c.Request.Context(), c.Query("search"), c.Query("category"), limit)
	if err != nil {
		h.logger.Error("failed to list tags", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// ListPopular returns the most used catalog tags
// GET /api/v1/tags/popular
func (h *TagHandler) ListPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tags, err := h.tagService.ListPopular(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list popular tags", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list popular tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// Create adds a tag to the catalog
// POST /api/v1/admin/tags
func (h *TagHandler) Create(c *gin.Context) {
	var request model.CatalogTagCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), &request)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			utils.SendErrorResponse(c, http.StatusConflict, err.Error())
		} else if strings.Contains(err.Error(), "label") {
			utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		} else {
			h.logger.Error("failed to create tag", zap.Error(err))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to create tag")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tag})
}
