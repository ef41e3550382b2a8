package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udex/lapizza-api/internal/cache"
	"github.com/udex/lapizza-api/internal/services"
)

type categoryNameRequest struct {
	Name string `json:"name"`
}

// CategoryController handles HTTP requests related to categories
type CategoryController interface {
	GetAllCategories(ctx *gin.Context)
	GetCategoryByID(ctx *gin.Context)
	CreateCategory(ctx *gin.Context)
	UpdateCategory(ctx *gin.Context)
	DeleteCategory(ctx *gin.Context)
}

type categoryController struct {
	service services.CategoryService
	cache   *cache.Catalog
}

// NewCategoryController creates a new instance of CategoryController
func NewCategoryController(service services.CategoryService, cache *cache.Catalog) CategoryController {
	return &categoryController{service: service, cache: cache}
}

// GetAllCategories godoc
// @Summary List categories
// @Description Get all categories with their product counts
// @Tags categories
// @Produce json
// @Success 200 {array} services.CategoryWithCount
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/categories [get]
func (c *categoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.service.GetAllCategories()
	if err != nil {
		respondError(ctx, "admin_categories_list", err, "Failed to fetch categories")
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// GetCategoryByID godoc
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} services.CategoryWithCount
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id} [get]
func (c *categoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	category, err := c.service.GetCategoryByID(id)
	if err != nil {
		respondError(ctx, "admin_category_get", err, "Failed to fetch category")
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body categoryNameRequest true "Category payload"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/categories [post]
func (c *categoryController) CreateCategory(ctx *gin.Context) {
	var req categoryNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	category, err := c.service.CreateCategory(req.Name)
	if err != nil {
		respondError(ctx, "admin_categories_create", err, "Failed to create category")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Rename category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body categoryNameRequest true "Category payload"
// @Success 200 {object} models.Category
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id} [put]
func (c *categoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	var req categoryNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	category, err := c.service.UpdateCategory(id, req.Name)
	if err != nil {
		respondError(ctx, "admin_category_update", err, "Failed to update category")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Delete a category; fails while it still owns products
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/categories/{id} [delete]
func (c *categoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	if err := c.service.DeleteCategory(id); err != nil {
		respondError(ctx, "admin_category_delete", err, "Failed to delete category")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
