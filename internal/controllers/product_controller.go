package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/udex/lapizza-api/internal/cache"
	"github.com/udex/lapizza-api/internal/services"
)

// ProductController handles HTTP requests related to catalog products
type ProductController interface {
	// GetAllProducts retrieves all products for the admin list
	GetAllProducts(ctx *gin.Context)
	// GetProductByID retrieves a product with its variants and ingredients
	GetProductByID(ctx *gin.Context)
	// SearchProducts finds products by partial name for the storefront
	SearchProducts(ctx *gin.Context)
	// CreateProduct creates a product with its variant set
	CreateProduct(ctx *gin.Context)
	// UpdateProduct reconciles a product's variant set and ingredients
	UpdateProduct(ctx *gin.Context)
	// DeleteProduct deletes a product unless it sits in a cart
	DeleteProduct(ctx *gin.Context)
}

type productController struct {
	service services.ProductService
	cache   *cache.Catalog
}

// NewProductController creates a new instance of ProductController
func NewProductController(service services.ProductService, cache *cache.Catalog) ProductController {
	return &productController{service: service, cache: cache}
}

// GetAllProducts godoc
// @Summary List products
// @Description Get all products with their category
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/products [get]
func (c *productController) GetAllProducts(ctx *gin.Context) {
	products, err := c.service.GetAllProducts()
	if err != nil {
		respondError(ctx, "admin_products_list", err, "Failed to fetch products")
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Get product
// @Description Get a single product with variants and ingredients
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/products/{id} [get]
func (c *productController) GetProductByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "product")
	if !ok {
		return
	}

	product, err := c.service.GetProductByID(id)
	if err != nil {
		respondError(ctx, "product_get", err, "Failed to fetch product")
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// SearchProducts godoc
// @Summary Search products
// @Description Find up to five products whose name contains the query
// @Tags products
// @Produce json
// @Param query query string false "Partial product name"
// @Success 200 {array} models.Product
// @Failure 500 {object} map[string]string
// @Router /api/v1/public/products/search [get]
func (c *productController) SearchProducts(ctx *gin.Context) {
	limit := 5
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 20 {
			limit = parsed
		}
	}

	products, err := c.service.SearchProducts(ctx.Query("query"), limit)
	if err != nil {
		respondError(ctx, "products_search", err, "Failed to search products")
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary Create product
// @Description Create a product with its variants and ingredient links
// @Tags products
// @Accept json
// @Produce json
// @Param product body services.ProductInput true "Product payload"
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/products [post]
func (c *productController) CreateProduct(ctx *gin.Context) {
	var input services.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := c.service.CreateProduct(input)
	if err != nil {
		respondError(ctx, "admin_products_create", err, "Failed to create product")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update product
// @Description Reconcile a product's variant set and ingredient links
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body services.ProductInput true "Product payload"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/products/{id} [put]
func (c *productController) UpdateProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "product")
	if !ok {
		return
	}

	var input services.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := c.service.UpdateProduct(id, input)
	if err != nil {
		respondError(ctx, "admin_products_update", err, "Failed to update product")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Delete a product unless one of its variants is in a cart
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/products/{id} [delete]
func (c *productController) DeleteProduct(ctx *gin.Context) {
	id, ok := pathID(ctx, "product")
	if !ok {
		return
	}

	if err := c.service.DeleteProduct(id); err != nil {
		respondError(ctx, "admin_products_delete", err, "Failed to delete product")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
