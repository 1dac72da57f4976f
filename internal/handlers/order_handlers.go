package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles the creation of a new order with its items
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	createdOrder, err := h.orderService.CreateOrder(req)
	if err != nil {
		utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more products not found or unavailable.", err.Error()))
		} else if errors.Is(err, services.ErrInsufficientStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock for one or more items.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidOrderStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order status provided.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, createdOrder)
}

// GetOrders handles fetching all orders with filters
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters

	if staffIDStr := c.Query("staff_id"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff_id format.", err.Error()))
			return
		}
		filters.StaffID = &staffID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if date := c.Query("date"); date != "" {
		filters.Date = &date
	}
	filters.Page = 1
	filters.PageSize = 10
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page format.", "page must be a positive integer"))
			return
		}
		filters.Page = page
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page_size format.", "page_size must be a positive integer"))
			return
		}
		filters.PageSize = pageSize
	}

	orders, totalCount, err := h.orderService.GetOrders(filters)
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch orders.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        orders,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetOrderByID handles fetching a single order with its items
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles order status transitions
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(orderID, req)
	if err != nil {
		utils.LogError(err, "UpdateOrderStatus: Error from orderService.UpdateOrderStatus")
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidOrderStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order status provided.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update order status.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles deleting an order and its items
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	if err := h.orderService.DeleteOrder(orderID); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteOrder: Error from orderService.DeleteOrder")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete order.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
