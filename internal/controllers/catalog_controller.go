package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/udex/lapizza-api/internal/cache"
	"github.com/udex/lapizza-api/internal/pricing"
	"github.com/udex/lapizza-api/internal/services"
)

// CatalogController serves the public storefront views through the catalog
// cache.
type CatalogController interface {
	GetCategories(ctx *gin.Context)
}

type catalogController struct {
	service services.CatalogService
	cache   *cache.Catalog
}

// NewCatalogController creates a new instance of CatalogController
func NewCatalogController(service services.CatalogService, cache *cache.Catalog) CatalogController {
	return &catalogController{service: service, cache: cache}
}

// GetCategories godoc
// @Summary Storefront catalog
// @Description Get categories with matching products, variants and ingredients
// @Tags catalog
// @Produce json
// @Param sizes query string false "Comma-separated pizza sizes (20,30,40)"
// @Param pizzaTypes query string false "Comma-separated crust types (1,2)"
// @Param ingredients query string false "Comma-separated ingredient IDs"
// @Param priceFrom query number false "Minimum variant price"
// @Param priceTo query number false "Maximum variant price"
// @Success 200 {array} models.Category
// @Failure 500 {object} map[string]string
// @Router /api/v1/public/categories [get]
func (c *catalogController) GetCategories(ctx *gin.Context) {
	key := "categories?" + ctx.Request.URL.RawQuery
	if cached, ok := c.cache.Get(key); ok {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	filter := parseCatalogFilter(ctx)
	categories, err := c.service.GetCategories(filter)
	if err != nil {
		respondError(ctx, "catalog_categories", err, "Failed to fetch catalog")
		return
	}

	c.cache.Set(key, categories)
	ctx.JSON(http.StatusOK, categories)
}

func parseCatalogFilter(ctx *gin.Context) services.CatalogFilter {
	filter := services.CatalogFilter{
		Sizes:       filterInts(parseIntList(ctx.Query("sizes")), pricing.ValidSize),
		PizzaTypes:  filterInts(parseIntList(ctx.Query("pizzaTypes")), pricing.ValidType),
		Ingredients: parseIntList(ctx.Query("ingredients")),
	}
	if raw := ctx.Query("priceFrom"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PriceFrom = &v
		}
	}
	if raw := ctx.Query("priceTo"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.PriceTo = &v
		}
	}
	return filter
}

// filterInts keeps the values the predicate accepts. Unknown sizes or crust
// types in the query would otherwise just produce an empty catalog.
func filterInts(values []int, keep func(int) bool) []int {
	var kept []int
	for _, v := range values {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// parseIntList parses a comma-separated list, skipping malformed entries.
func parseIntList(raw string) []int {
	if raw == "" {
		return nil
	}
	var values []int
	for _, part := range strings.Split(raw, ",") {
		if v, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			values = append(values, v)
		}
	}
	return values
}
