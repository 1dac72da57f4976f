package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var (
	ErrProductNotFound    = errors.New("product not found or not available")
	ErrInsufficientStock  = errors.New("insufficient stock for item")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// --- Data Transfer Objects (DTOs) ---

// CreateOrderItemRequest is used for creating individual order items.
type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	CustomerName string                   `json:"customer_name" binding:"required"`
	StaffID      *int64                   `json:"staff_id"`
	Status       string                   `json:"status"`
	Notes        *string                  `json:"notes"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,dive"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(orderID int64) error
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	db          *sql.DB // For managing transactions
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(or repositories.OrderRepository, pr repositories.ProductRepository, db *sql.DB) OrderService {
	return &orderService{
		orderRepo:   or,
		productRepo: pr,
		db:          db,
	}
}

// CreateOrder prices every line from the current catalog, decrements stock
// for tracked products and persists the order with its items in one
// transaction.
func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !isValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	var totalAmount float64
	itemsToCreate := make([]models.OrderItem, 0, len(req.Items))

	for _, itemReq := range req.Items {
		product, repoErr := s.productRepo.GetProductByID(itemReq.ProductID)
		if repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: product ID %d", ErrProductNotFound, itemReq.ProductID)
			}
			return nil, fmt.Errorf("failed to fetch product %d details: %w", itemReq.ProductID, repoErr)
		}
		if !product.IsAvailable {
			return nil, fmt.Errorf("%w: product %s (ID: %d)", ErrProductNotFound, product.Name, product.ID)
		}

		itemTotalPrice := product.Price * float64(itemReq.Quantity)
		totalAmount += itemTotalPrice

		if product.Stock != nil {
			if *product.Stock < itemReq.Quantity {
				return nil, fmt.Errorf("%w: %s (ID: %d). Requested: %d, Available: %d",
					ErrInsufficientStock, product.Name, product.ID, itemReq.Quantity, *product.Stock)
			}
			if _, repoErr = s.productRepo.AdjustStock(tx, product.ID, -itemReq.Quantity); repoErr != nil {
				return nil, fmt.Errorf("failed to update stock for product %s (ID: %d): %w", product.Name, product.ID, repoErr)
			}
		}

		productID := product.ID
		itemsToCreate = append(itemsToCreate, models.OrderItem{
			ProductID:  &productID,
			Name:       product.Name,
			Quantity:   itemReq.Quantity,
			UnitPrice:  product.Price,
			TotalPrice: itemTotalPrice,
		})
	}

	order := models.Order{
		CustomerName: req.CustomerName,
		StaffID:      req.StaffID,
		Status:       status,
		TotalAmount:  totalAmount,
		Notes:        req.Notes,
		OrderTime:    time.Now(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	createdOrderID, repoErr := s.orderRepo.CreateOrder(tx, &order)
	if repoErr != nil {
		return nil, fmt.Errorf("failed to create order record: %w", repoErr)
	}
	order.ID = createdOrderID

	for _, item := range itemsToCreate {
		item.OrderID = createdOrderID
		if _, repoErr = s.orderRepo.CreateOrderItem(tx, &item); repoErr != nil {
			return nil, fmt.Errorf("failed to create order item (product_id: %v): %w", item.ProductID, repoErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return s.GetOrderByID(createdOrderID)
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for order ID %d: %w", orderID, err)
	}
	order.Items = items
	return order, nil
}

// UpdateOrderStatus transitions an order between the pending, completed and
// cancelled states. Cancelling an order returns tracked stock to the
// catalog.
func (s *orderService) UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !isValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	currentOrder, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}

	if req.Status == models.OrderStatusCancelled && currentOrder.Status != models.OrderStatusCancelled {
		if err := s.returnStock(tx, orderID); err != nil {
			return nil, err
		}
	}

	err = s.orderRepo.UpdateOrderStatus(tx, orderID, req.Status, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status in repository: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction for order status update: %w", err)
	}
	return s.GetOrderByID(orderID)
}

func (s *orderService) DeleteOrder(orderID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for deletion: %w", err)
	}

	if order.Status != models.OrderStatusCancelled {
		if err := s.returnStock(tx, orderID); err != nil {
			return err
		}
	}

	if _, err = s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if _, err = s.orderRepo.DeleteOrder(tx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return tx.Commit()
}

// returnStock puts every tracked item of an order back into the catalog.
func (s *orderService) returnStock(tx *sql.Tx, orderID int64) error {
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order items for stock return: %w", err)
	}
	for _, item := range items {
		if item.ProductID == nil {
			continue
		}
		_, err := s.productRepo.AdjustStock(tx, *item.ProductID, item.Quantity)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to return stock for product ID %d: %w", *item.ProductID, err)
		}
		// ErrNotFound here means the product does not track stock (or was
		// removed from the catalog); nothing to return either way.
	}
	return nil
}

func isValidOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	default:
		return false
	}
}
