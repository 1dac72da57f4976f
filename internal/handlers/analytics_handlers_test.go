package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsService struct {
	summary    *models.SalesSummary
	err        error
	lastPeriod models.ReportPeriod
}

func (f *fakeAnalyticsService) GetSalesSummary(period models.ReportPeriod) (*models.SalesSummary, error) {
	f.lastPeriod = period
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func setupAnalyticsRouter(svc services.AnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewAnalyticsHandler(svc)
	engine.GET("/analytics/sales-summary", handler.GetSalesSummary)
	return engine
}

func TestGetSalesSummary_OK(t *testing.T) {
	svc := &fakeAnalyticsService{
		summary: &models.SalesSummary{
			GrossAmount:      150,
			TransactionCount: 2,
			TotalOutlets:     3,
		},
	}
	engine := setupAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/sales-summary?period=week", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PeriodWeek, svc.lastPeriod)

	var body models.SalesSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 150.0, body.GrossAmount)
	assert.Equal(t, 2, body.TransactionCount)
}

func TestGetSalesSummary_DefaultsToToday(t *testing.T) {
	svc := &fakeAnalyticsService{summary: &models.SalesSummary{}}
	engine := setupAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/sales-summary", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PeriodToday, svc.lastPeriod)
}

func TestGetSalesSummary_InvalidPeriod(t *testing.T) {
	svc := &fakeAnalyticsService{
		err: fmt.Errorf("%w: %q", services.ErrInvalidPeriod, "quarter"),
	}
	engine := setupAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/sales-summary?period=quarter", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid report period")
}

func TestGetSalesSummary_InternalError(t *testing.T) {
	svc := &fakeAnalyticsService{err: errors.New("connection refused")}
	engine := setupAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/sales-summary", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to compute sales summary")
}
