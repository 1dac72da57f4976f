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

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// CreateProduct handles adding a new catalog entry
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateProduct: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(req)
	if err != nil {
		utils.LogError(err, "CreateProduct: Error from productService.CreateProduct")
		if errors.Is(err, services.ErrProductNameTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A product with this name already exists.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProducts handles listing the catalog with filters
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var filters models.ProductFilters

	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if availableStr := c.Query("available"); availableStr != "" {
		available, err := strconv.ParseBool(availableStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid available format.", "available must be true or false"))
			return
		}
		filters.Available = &available
	}
	if search := c.Query("search"); search != "" {
		filters.SearchTerm = &search
	}
	filters.Page = 1
	filters.PageSize = 20
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

	products, totalCount, err := h.productService.GetProducts(filters)
	if err != nil {
		utils.LogError(err, "GetProducts: Error from productService.GetProducts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch products.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        products,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetProductByID handles fetching a single catalog entry
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID format.", err.Error()))
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetProductByID: Error from productService.GetProductByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch product.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles full updates of a catalog entry
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID format.", err.Error()))
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(id, req)
	if err != nil {
		utils.LogError(err, "UpdateProduct: Error from productService.UpdateProduct")
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		} else if errors.Is(err, services.ErrProductNameTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A product with this name already exists.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles removing a catalog entry
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID format.", err.Error()))
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteProduct: Error from productService.DeleteProduct")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete product.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
