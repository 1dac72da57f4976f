package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// Order methods
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error) // orders, total count, error
	// ListAllOrders returns every order with its items attached. The
	// analytics engine consumes this materialized set directly.
	ListAllOrders() ([]models.Order, error)
	UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus string, updatedAt time.Time) error
	DeleteOrder(executor SQLExecutor, orderID int64) (int64, error)

	// OrderItem methods
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
	DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// --- Order Methods ---

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	            (customer_name, staff_id, order_time, status, total_amount, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if order.OrderTime.IsZero() {
		order.OrderTime = time.Now()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		order.CustomerName, order.StaffID, order.OrderTime, order.Status,
		order.TotalAmount, order.Notes, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT id, customer_name, staff_id, order_time, status, total_amount, notes, created_at, updated_at
	          FROM orders
	          WHERE id = $1`
	err := r.db.QueryRow(query, orderID).Scan(
		&order.ID, &order.CustomerName, &order.StaffID, &order.OrderTime, &order.Status,
		&order.TotalAmount, &order.Notes, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT
            o.id, o.customer_name, o.staff_id, o.order_time, o.status,
            o.total_amount, o.notes, o.created_at, o.updated_at,
            sm.full_name as staff_name,
            COUNT(*) OVER() as total_count
        FROM orders o
        LEFT JOIN staff_members sm ON o.staff_id = sm.id
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("o.staff_id = $%d", argCounter))
		args = append(args, *filters.StaffID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("o.order_time BETWEEN $%d AND $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY o.order_time DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		var staffName sql.NullString

		err := rows.Scan(
			&o.ID, &o.CustomerName, &o.StaffID, &o.OrderTime, &o.Status,
			&o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
			&staffName,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}

		if o.StaffID != nil {
			staffMember := models.StaffMember{ID: *o.StaffID}
			if staffName.Valid {
				staffMember.FullName = staffName.String
			}
			o.StaffMember = &staffMember
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

func (r *orderRepository) ListAllOrders() ([]models.Order, error) {
	orders := []models.Order{}
	query := `SELECT id, customer_name, staff_id, order_time, status, total_amount, notes, created_at, updated_at
	          FROM orders
	          ORDER BY order_time DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orderIndex := make(map[int64]int)
	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID, &o.CustomerName, &o.StaffID, &o.OrderTime, &o.Status,
			&o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orderIndex[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}

	itemsQuery := `SELECT id, order_id, product_id, name, quantity, unit_price, total_price
	               FROM order_items
	               ORDER BY order_id, id`
	itemRows, err := r.db.Query(itemsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items: %v", ErrDatabaseError, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.OrderItem
		err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		if idx, ok := orderIndex[item.OrderID]; ok {
			orders[idx].Items = append(orders[idx].Items, item)
		}
	}
	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus string, updatedAt time.Time) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, newStatus, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order status update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(executor SQLExecutor, orderID int64) (int64, error) {
	query := `DELETE FROM orders WHERE id = $1`
	result, err := executor.Exec(query, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}

// --- OrderItem Methods ---

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items
	            (order_id, product_id, name, quantity, unit_price, total_price)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	err := executor.QueryRow(query,
		item.OrderID, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.TotalPrice,
	).Scan(&item.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating order item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `SELECT id, order_id, product_id, name, quantity, unit_price, total_price
	          FROM order_items
	          WHERE order_id = $1
	          ORDER BY id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item for order ID %d: %v", ErrDatabaseError, orderID, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}

func (r *orderRepository) DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error) {
	query := `DELETE FROM order_items WHERE order_id = $1`
	result, err := executor.Exec(query, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return rowsAffected, nil
}
