package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler holds the analytics service.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

// GetSalesSummary recomputes and returns the sales summary for the requested
// period. The period only scopes the scalar metrics; the trend series and
// hourly histogram always cover their fixed windows.
func (h *AnalyticsHandler) GetSalesSummary(c *gin.Context) {
	period := models.ReportPeriod(c.DefaultQuery("period", string(models.PeriodToday)))

	summary, err := h.analyticsService.GetSalesSummary(period)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Invalid report period. Use one of: today, yesterday, week, month.", err.Error()))
			return
		}
		utils.LogError(err, "GetSalesSummary: Error from analyticsService.GetSalesSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to compute sales summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
