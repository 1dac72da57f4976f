package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: ms}
}

// CreateMember handles enrolling a new loyalty member
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req services.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMember: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.CreateMember(req)
	if err != nil {
		utils.LogError(err, "CreateMember: Error from memberService.CreateMember")
		if errors.Is(err, services.ErrMemberPhoneTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A member with this phone number already exists.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetMembers handles listing members with pagination and search
func (h *MemberHandler) GetMembers(c *gin.Context) {
	page := 1
	pageSize := 20
	if pageStr := c.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page format.", "page must be a positive integer"))
			return
		}
		page = p
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page_size format.", "page_size must be a positive integer"))
			return
		}
		pageSize = ps
	}
	var searchTerm *string
	if search := c.Query("search"); search != "" {
		searchTerm = &search
	}

	members, totalCount, err := h.memberService.GetMembers(page, pageSize, searchTerm)
	if err != nil {
		utils.LogError(err, "GetMembers: Error from memberService.GetMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch members.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        members,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetMemberByID handles fetching a single member
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	member, err := h.memberService.GetMemberByID(id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetMemberByID: Error from memberService.GetMemberByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMember handles full updates of a member record
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	var req services.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.UpdateMember(id, req)
	if err != nil {
		utils.LogError(err, "UpdateMember: Error from memberService.UpdateMember")
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrMemberPhoneTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A member with this phone number already exists.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, member)
}

// AdjustMemberPoints handles crediting or debiting loyalty points
func (h *MemberHandler) AdjustMemberPoints(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	var req services.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	newBalance, err := h.memberService.AdjustPoints(id, req)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
			return
		}
		utils.LogError(err, "AdjustMemberPoints: Error from memberService.AdjustPoints")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to adjust loyalty points.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"loyalty_points": newBalance})
}

// DeleteMember handles removing a member record
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	if err := h.memberService.DeleteMember(id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteMember: Error from memberService.DeleteMember")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}
