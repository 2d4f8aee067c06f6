package handler

import (
	"net/http"
	"strconv"

	"github.com/connecthq/connect/internal/service"
	"github.com/connecthq/connect/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchoolHandler handles school catalog endpoints
type SchoolHandler struct {
	schoolService *service.SchoolService
	logger        *zap.Logger
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(schoolService *service.SchoolService, logger *zap.Logger) *SchoolHandler {
	return &SchoolHandler{
		schoolService: schoolService,
		logger:        logger,
	}
}

// Search returns schools matching a name fragment
// GET /api/v1/schools
func (h *SchoolHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	schools, err := h.schoolService.Search(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		h.logger.Error("failed to search schools", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to search schools")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": schools})
}
