package services

import (
	"database/sql"
	"errors"
	"fmt"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

var ErrProductNameTaken = errors.New("a product with this name already exists")

// --- DTOs ---

// CreateProductRequest is used for creating a new catalog entry.
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       *int     `json:"stock"`
	IsAvailable *bool    `json:"is_available"`
}

// UpdateProductRequest mirrors CreateProductRequest for full updates.
type UpdateProductRequest CreateProductRequest

// --- ProductService Interface ---
type ProductService interface {
	CreateProduct(req CreateProductRequest) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, int, error)
	GetProductByID(id int64) (*models.Product, error)
	UpdateProduct(id int64, req UpdateProductRequest) (*models.Product, error)
	DeleteProduct(id int64) error
}

type productService struct {
	productRepo repositories.ProductRepository
	db          *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(pr repositories.ProductRepository, db *sql.DB) ProductService {
	return &productService{productRepo: pr, db: db}
}

func (s *productService) CreateProduct(req CreateProductRequest) (*models.Product, error) {
	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if _, err := s.productRepo.CreateProduct(s.db, &product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrProductNameTaken
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *productService) GetProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	products, totalCount, err := s.productRepo.GetProducts(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, totalCount, nil
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return product, nil
}

func (s *productService) UpdateProduct(id int64, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product for update: %w", err)
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := s.productRepo.UpdateProduct(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrProductNameTaken
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *productService) DeleteProduct(id int64) error {
	if err := s.productRepo.DeleteProduct(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
