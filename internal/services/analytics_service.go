package services

import (
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

// AnalyticsService exposes the sales summary computation to the API layer.
type AnalyticsService interface {
	GetSalesSummary(period models.ReportPeriod) (*models.SalesSummary, error)
}

type analyticsService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	rules       SalesRules
	now         func() time.Time
}

// NewAnalyticsService creates a new instance of AnalyticsService using the
// given business-rule constants.
func NewAnalyticsService(or repositories.OrderRepository, pr repositories.ProductRepository, rules SalesRules) AnalyticsService {
	return &analyticsService{
		orderRepo:   or,
		productRepo: pr,
		rules:       rules,
		now:         time.Now,
	}
}

// GetSalesSummary materializes the full order list and product catalog and
// recomputes the summary from scratch. Nothing is cached here: the summary
// has no lifecycle of its own and callers are free to cache or discard it.
func (s *analyticsService) GetSalesSummary(period models.ReportPeriod) (*models.SalesSummary, error) {
	orders, err := s.orderRepo.ListAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for sales summary: %w", err)
	}
	products, err := s.productRepo.ListAllProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog for sales summary: %w", err)
	}
	return BuildSalesSummary(orders, products, period, s.rules, s.now())
}
