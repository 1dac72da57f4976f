package models

import "time"

// Order lifecycle statuses. Only these three participate in analytics;
// anything else is ignored by the aggregation engine.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order represents a captured restaurant order.
// CustomerName is free text taken at the counter; there is no stable
// customer key, so analytics treats equal names as the same customer.
type Order struct {
	ID           int64        `json:"id" db:"id"`
	CustomerName string       `json:"customer_name" db:"customer_name"`
	StaffID      *int64       `json:"staff_id,omitempty" db:"staff_id"`
	Status       string       `json:"status" db:"status"`
	TotalAmount  float64      `json:"total_amount" db:"total_amount"`
	Notes        *string      `json:"notes,omitempty" db:"notes"`
	OrderTime    time.Time    `json:"order_time" db:"order_time"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
	Items        []OrderItem  `json:"items,omitempty"`
	StaffMember  *StaffMember `json:"staff_member,omitempty"` // For joining with staff details
}

// OrderItem is a single line of an order. ProductID may be nil for legacy
// rows captured before the catalog migration; such lines are matched to the
// catalog by Name where needed.
type OrderItem struct {
	ID         int64    `json:"id" db:"id"`
	OrderID    int64    `json:"order_id" db:"order_id"`
	ProductID  *int64   `json:"product_id,omitempty" db:"product_id"`
	Name       string   `json:"name" db:"name"`
	Quantity   int      `json:"quantity" db:"quantity"`
	UnitPrice  float64  `json:"unit_price" db:"unit_price"`
	TotalPrice float64  `json:"total_price" db:"total_price"`
	Product    *Product `json:"product,omitempty"` // For joining with catalog details
}

// OrderFilters defines the available filters for querying orders.
// This struct is used by both the service and repository layers.
type OrderFilters struct {
	StaffID  *int64  `form:"staff_id"`
	Status   *string `form:"status"`
	Date     *string `form:"date"` // Expected format YYYY-MM-DD
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
