package services

import (
	"errors"
	"testing"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	repositories.OrderRepository
	orders []models.Order
	err    error
}

func (f *fakeOrderRepo) ListAllOrders() ([]models.Order, error) {
	return f.orders, f.err
}

type fakeProductRepo struct {
	repositories.ProductRepository
	products []models.Product
	err      error
}

func (f *fakeProductRepo) ListAllProducts() ([]models.Product, error) {
	return f.products, f.err
}

func TestAnalyticsService_GetSalesSummary(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		orders: []models.Order{
			{
				CustomerName: "alice",
				Status:       models.OrderStatusCompleted,
				TotalAmount:  100,
				OrderTime:    testNow.Add(-time.Hour),
			},
		},
	}
	productRepo := &fakeProductRepo{}

	svc := NewAnalyticsService(orderRepo, productRepo, DefaultSalesRules()).(*analyticsService)
	svc.now = func() time.Time { return testNow }

	summary, err := svc.GetSalesSummary(models.PeriodToday)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, summary.GrossAmount, 1e-9)
	assert.Equal(t, 1, summary.TransactionCount)
}

func TestAnalyticsService_GetSalesSummary_InvalidPeriod(t *testing.T) {
	svc := NewAnalyticsService(&fakeOrderRepo{}, &fakeProductRepo{}, DefaultSalesRules()).(*analyticsService)
	svc.now = func() time.Time { return testNow }

	_, err := svc.GetSalesSummary("annual")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestAnalyticsService_GetSalesSummary_RepoErrors(t *testing.T) {
	repoErr := errors.New("connection refused")

	svc := NewAnalyticsService(&fakeOrderRepo{err: repoErr}, &fakeProductRepo{}, DefaultSalesRules()).(*analyticsService)
	svc.now = func() time.Time { return testNow }
	_, err := svc.GetSalesSummary(models.PeriodToday)
	assert.ErrorIs(t, err, repoErr)

	svc = NewAnalyticsService(&fakeOrderRepo{}, &fakeProductRepo{err: repoErr}, DefaultSalesRules()).(*analyticsService)
	svc.now = func() time.Time { return testNow }
	_, err = svc.GetSalesSummary(models.PeriodToday)
	assert.ErrorIs(t, err, repoErr)
}
