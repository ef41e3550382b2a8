package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udex/lapizza-api/internal/cache"
	"github.com/udex/lapizza-api/internal/services"
)

// IngredientController handles HTTP requests related to the topping catalog
type IngredientController interface {
	GetAllIngredients(ctx *gin.Context)
	GetIngredientByID(ctx *gin.Context)
	CreateIngredient(ctx *gin.Context)
	UpdateIngredient(ctx *gin.Context)
	DeleteIngredient(ctx *gin.Context)
}

type ingredientController struct {
	service services.IngredientService
	cache   *cache.Catalog
}

// NewIngredientController creates a new instance of IngredientController
func NewIngredientController(service services.IngredientService, cache *cache.Catalog) IngredientController {
	return &ingredientController{service: service, cache: cache}
}

// GetAllIngredients godoc
// @Summary List ingredients
// @Tags ingredients
// @Produce json
// @Success 200 {array} models.Ingredient
// @Failure 500 {object} map[string]string
// @Router /api/v1/public/ingredients [get]
func (c *ingredientController) GetAllIngredients(ctx *gin.Context) {
	ingredients, err := c.service.GetAllIngredients()
	if err != nil {
		respondError(ctx, "ingredients_list", err, "Failed to fetch ingredients")
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// GetIngredientByID godoc
// @Summary Get ingredient
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/ingredients/{id} [get]
func (c *ingredientController) GetIngredientByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "ingredient")
	if !ok {
		return
	}

	ingredient, err := c.service.GetIngredientByID(id)
	if err != nil {
		respondError(ctx, "admin_ingredient_get", err, "Failed to fetch ingredient")
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body services.IngredientInput true "Ingredient payload"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/ingredients [post]
func (c *ingredientController) CreateIngredient(ctx *gin.Context) {
	var input services.IngredientInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ingredient, err := c.service.CreateIngredient(input)
	if err != nil {
		respondError(ctx, "admin_ingredients_create", err, "Failed to create ingredient")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusCreated, ingredient)
}

// UpdateIngredient godoc
// @Summary Update ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param ingredient body services.IngredientInput true "Ingredient payload"
// @Success 200 {object} models.Ingredient
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/ingredients/{id} [put]
func (c *ingredientController) UpdateIngredient(ctx *gin.Context) {
	id, ok := pathID(ctx, "ingredient")
	if !ok {
		return
	}

	var input services.IngredientInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ingredient, err := c.service.UpdateIngredient(id, input)
	if err != nil {
		respondError(ctx, "admin_ingredient_update", err, "Failed to update ingredient")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusOK, ingredient)
}

// DeleteIngredient godoc
// @Summary Delete ingredient
// @Description Delete an ingredient; fails while products still use it
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/ingredients/{id} [delete]
func (c *ingredientController) DeleteIngredient(ctx *gin.Context) {
	id, ok := pathID(ctx, "ingredient")
	if !ok {
		return
	}

	if err := c.service.DeleteIngredient(id); err != nil {
		respondError(ctx, "admin_ingredient_delete", err, "Failed to delete ingredient")
		return
	}

	c.cache.Clear()
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
