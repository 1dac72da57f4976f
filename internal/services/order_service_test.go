package services

import (
	"testing"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct {
	repositories.OrderRepository
	ordersByID map[int64]*models.Order
	itemsByID  map[int64][]models.OrderItem
	listed     []models.Order
	total      int
}

func (s *stubOrderRepo) GetOrderByID(orderID int64) (*models.Order, error) {
	order, ok := s.ordersByID[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderRepo) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	return s.itemsByID[orderID], nil
}

func (s *stubOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	return s.listed, s.total, nil
}

func TestOrderService_GetOrderByID(t *testing.T) {
	productID := int64(1)
	repo := &stubOrderRepo{
		ordersByID: map[int64]*models.Order{
			42: {ID: 42, CustomerName: "alice", Status: models.OrderStatusPending, TotalAmount: 30},
		},
		itemsByID: map[int64][]models.OrderItem{
			42: {{ID: 7, OrderID: 42, ProductID: &productID, Name: "Latte", Quantity: 2, UnitPrice: 15, TotalPrice: 30}},
		},
	}
	svc := NewOrderService(repo, nil, nil)

	order, err := svc.GetOrderByID(42)
	require.NoError(t, err)
	assert.Equal(t, "alice", order.CustomerName)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Latte", order.Items[0].Name)
}

func TestOrderService_GetOrderByID_NotFound(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{ordersByID: map[int64]*models.Order{}}, nil, nil)

	_, err := svc.GetOrderByID(999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetOrders(t *testing.T) {
	repo := &stubOrderRepo{
		listed: []models.Order{{ID: 1}, {ID: 2}},
		total:  5,
	}
	svc := NewOrderService(repo, nil, nil)

	orders, total, err := svc.GetOrders(models.OrderFilters{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, 5, total)
}

func TestOrderService_CreateOrder_InvalidStatus(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, nil, nil)

	_, err := svc.CreateOrder(CreateOrderRequest{
		CustomerName: "alice",
		Status:       "shipped",
		Items:        []CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, nil, nil)

	_, err := svc.UpdateOrderStatus(1, UpdateOrderStatusRequest{Status: "returned"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, isValidOrderStatus(models.OrderStatusPending))
	assert.True(t, isValidOrderStatus(models.OrderStatusCompleted))
	assert.True(t, isValidOrderStatus(models.OrderStatusCancelled))
	assert.False(t, isValidOrderStatus(""))
	assert.False(t, isValidOrderStatus("Completed"))
	assert.False(t, isValidOrderStatus("refunded"))
}
