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

// ProductRepository defines the interface for catalog database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (int64, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, int, error) // products, total count, error
	// ListAllProducts returns the full catalog. The analytics engine
	// consumes this materialized set directly.
	ListAllProducts() ([]models.Product, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	AdjustStock(executor SQLExecutor, productID int64, delta int) (int, error)
	DeleteProduct(executor SQLExecutor, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (int64, error) {
	query := `INSERT INTO products (name, category, description, price, stock, is_available, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = currentTime
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = currentTime
	}

	// Empty category stays NULL in the database; the model treats both the
	// same way.
	var category sql.NullString
	if product.Category != "" {
		category = sql.NullString{String: product.Category, Valid: true}
	}

	err := executor.QueryRow(query,
		product.Name, category, product.Description, product.Price,
		product.Stock, product.IsAvailable, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return product.ID, nil
}

func (r *productRepository) GetProductByID(id int64) (*models.Product, error) {
	product := &models.Product{}
	var category sql.NullString
	query := `SELECT id, name, category, description, price, stock, is_available, created_at, updated_at
	          FROM products
	          WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&product.ID, &product.Name, &category, &product.Description, &product.Price,
		&product.Stock, &product.IsAvailable, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	if category.Valid {
		product.Category = category.String
	}
	return product, nil
}

func (r *productRepository) GetProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	products := []models.Product{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT id, name, category, description, price, stock, is_available, created_at, updated_at,
               COUNT(*) OVER() as total_count
        FROM products
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, *filters.Category)
		argCounter++
	}
	if filters.Available != nil {
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", argCounter))
		args = append(args, *filters.Available)
		argCounter++
	}
	if filters.SearchTerm != nil && *filters.SearchTerm != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argCounter))
		args = append(args, "%"+*filters.SearchTerm+"%")
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

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
		return nil, 0, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		var category sql.NullString
		err := rows.Scan(
			&p.ID, &p.Name, &category, &p.Description, &p.Price,
			&p.Stock, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		if category.Valid {
			p.Category = category.String
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

func (r *productRepository) ListAllProducts() ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT id, name, category, description, price, stock, is_available, created_at, updated_at
	          FROM products
	          ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		var category sql.NullString
		err := rows.Scan(
			&p.ID, &p.Name, &category, &p.Description, &p.Price,
			&p.Stock, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		if category.Valid {
			p.Category = category.String
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products
	          SET name = $1, category = $2, description = $3, price = $4, stock = $5, is_available = $6, updated_at = $7
	          WHERE id = $8`

	var category sql.NullString
	if product.Category != "" {
		category = sql.NullString{String: product.Category, Valid: true}
	}
	product.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		product.Name, category, product.Description, product.Price,
		product.Stock, product.IsAvailable, product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for product update ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock applies a delta to a tracked product's stock and returns the
// new level. Products with NULL stock are not tracked and are left alone.
func (r *productRepository) AdjustStock(executor SQLExecutor, productID int64, delta int) (int, error) {
	query := `UPDATE products
	          SET stock = stock + $1, updated_at = $2
	          WHERE id = $3 AND stock IS NOT NULL
	          RETURNING stock`

	var newStock int
	err := executor.QueryRow(query, delta, time.Now(), productID).Scan(&newStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: adjusting stock for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	return newStock, nil
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: product ID %d is referenced by order items: %v", ErrDatabaseError, id, err)
		}
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
