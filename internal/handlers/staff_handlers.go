package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const attendanceDateLayout = "2006-01-02"

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaffMember handles adding a new staff record
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateStaffMember: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.CreateStaffMember(req)
	if err != nil {
		utils.LogError(err, "CreateStaffMember: Error from staffService.CreateStaffMember")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// GetStaffMembers handles listing staff with pagination
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
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

	staff, totalCount, err := h.staffService.GetStaffMembers(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetStaffMembers: Error from staffService.GetStaffMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff members.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        staff,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetStaffMemberByID handles fetching a single staff record
func (h *StaffHandler) GetStaffMemberByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	staff, err := h.staffService.GetStaffMemberByID(id)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetStaffMemberByID: Error from staffService.GetStaffMemberByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaffMember handles full updates of a staff record
func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.UpdateStaffMember(id, req)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		utils.LogError(err, "UpdateStaffMember: Error from staffService.UpdateStaffMember")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update staff member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaffMember handles removing a staff record
func (h *StaffHandler) DeleteStaffMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	if err := h.staffService.DeleteStaffMember(id); err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteStaffMember: Error from staffService.DeleteStaffMember")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete staff member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}

// ClockIn opens an attendance record for a staff member
func (h *StaffHandler) ClockIn(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	var body struct {
		Notes *string `json:"notes"`
	}
	// Body is optional for clock-in.
	_ = c.ShouldBindJSON(&body)

	record, err := h.staffService.ClockIn(id, body.Notes)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		if errors.Is(err, services.ErrShiftAlreadyOpen) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Staff member already has an open shift.", err.Error()))
			return
		}
		utils.LogError(err, "ClockIn: Error from staffService.ClockIn")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock in.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ClockOut closes the open attendance record for a staff member
func (h *StaffHandler) ClockOut(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	record, err := h.staffService.ClockOut(id)
	if err != nil {
		if errors.Is(err, services.ErrNoOpenShift) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Staff member has no open shift.", err.Error()))
			return
		}
		utils.LogError(err, "ClockOut: Error from staffService.ClockOut")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock out.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetAttendance lists attendance records for a staff member, optionally
// bounded by from/to dates (YYYY-MM-DD).
func (h *StaffHandler) GetAttendance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse(attendanceDateLayout, fromStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid from date format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		from = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse(attendanceDateLayout, toStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid to date format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}

	records, err := h.staffService.GetAttendance(id, from, to)
	if err != nil {
		utils.LogError(err, "GetAttendance: Error from staffService.GetAttendance")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch attendance records.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, records)
}
