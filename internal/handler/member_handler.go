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

// MemberHandler handles join requests and membership decisions
type MemberHandler struct {
	memberService *service.MemberService
	logger        *zap.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *service.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		logger:        logger,
	}
}

// RequestJoin asks to join a collaboration request
// POST /api/v1/requests/:id/members
func (h *MemberHandler) RequestJoin(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	var join model.JoinRequest
	if err := c.ShouldBindJSON(&join); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.memberService.RequestJoin(c.Request.Context(), requestID, userID, &join)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else if strings.Contains(err.Error(), "already") || strings.Contains(err.Error(), "own request") || strings.Contains(err.Error(), "rejected") {
			utils.SendErrorResponse(c, http.StatusConflict, err.Error())
		} else {
			h.logger.Error("failed to create join request", zap.Error(err),
				zap.Int("requestID", requestID), zap.Int("userID", userID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to request join")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": member})
}

// ListMembers lists a request's members
// GET /api/v1/requests/:id/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	members, err := h.memberService.ListMembers(c.Request.Context(), requestID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else {
			h.logger.Error("failed to list members", zap.Error(err), zap.Int("requestID", requestID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to list members")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": members})
}

// Decide approves or rejects a pending join request
// PUT /api/v1/requests/:id/members/:memberID
func (h *MemberHandler) Decide(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid member ID")
		return
	}

	userID := middleware.CurrentUserID(c)

	var decision model.MemberDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.memberService.Decide(c.Request.Context(), requestID, memberID, userID, &decision)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
		} else if strings.Contains(err.Error(), "only the creator") {
			utils.SendErrorResponse(c, http.StatusForbidden, err.Error())
		} else if strings.Contains(err.Error(), "already decided") {
			utils.SendErrorResponse(c, http.StatusConflict, err.Error())
		} else {
			h.logger.Error("failed to decide join request", zap.Error(err),
				zap.Int("requestID", requestID), zap.Int("memberID", memberID))
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to update member")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": member})
}
