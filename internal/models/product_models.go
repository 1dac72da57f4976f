package models

import "time"

// Product represents a menu catalog entry (food, drink, merchandise).
// Category is a free-text label; an empty category is valid and the
// analytics engine tolerates it.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Category    string    `json:"category" db:"category"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price" binding:"required,gt=0"`
	Stock       *int      `json:"stock,omitempty" db:"stock"` // Nullable for items whose stock is not tracked
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductFilters defines the available filters for querying the catalog.
type ProductFilters struct {
	Category   *string `form:"category"`
	Available  *bool   `form:"available"`
	SearchTerm *string `form:"search"`
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
}
