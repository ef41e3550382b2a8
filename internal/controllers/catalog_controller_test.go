package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udex/lapizza-api/internal/cache"
	"github.com/udex/lapizza-api/internal/models"
	"github.com/udex/lapizza-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testApp struct {
	db     *gorm.DB
	cache  *cache.Catalog
	router *gin.Engine
}

func setupTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductItem{},
		&models.Ingredient{},
		&models.Cart{},
		&models.CartItem{},
	))

	catalogCache := cache.New(time.Minute)
	catalog := NewCatalogController(services.NewCatalogService(db), catalogCache)
	products := NewProductController(services.NewProductService(db), catalogCache)
	categories := NewCategoryController(services.NewCategoryService(db), catalogCache)

	router := gin.New()
	router.GET("/public/categories", catalog.GetCategories)
	router.GET("/public/products/:id", products.GetProductByID)
	router.POST("/admin/categories", categories.CreateCategory)
	router.POST("/admin/products", products.CreateProduct)
	router.DELETE("/admin/categories/:id", categories.DeleteCategory)

	return &testApp{db: db, cache: catalogCache, router: router}
}

func (app *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestCatalogServedFromCache(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, http.MethodPost, "/admin/categories", gin.H{"name": "Pizzas"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/public/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pizzas")

	// The response is now cached; a direct DB write is invisible until a
	// mutation goes through the admin API
	require.NoError(t, app.db.Create(&models.Category{Name: "Hidden"}).Error)
	w = app.do(t, http.MethodGet, "/public/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Hidden")

	w = app.do(t, http.MethodPost, "/admin/categories", gin.H{"name": "Drinks"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/public/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hidden")
	assert.Contains(t, w.Body.String(), "Drinks")
}

func TestCatalogFilterQueriesAreSeparateCacheKeys(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, http.MethodPost, "/admin/categories", gin.H{"name": "Pizzas"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	size := 30
	pizzaType := 1
	w = app.do(t, http.MethodPost, "/admin/products", gin.H{
		"name":       "Pepperoni",
		"imageUrl":   "/img/pepperoni.png",
		"categoryId": created.ID,
		"isPizza":    true,
		"items": []gin.H{
			{"price": 12, "size": size, "pizzaType": pizzaType},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/public/categories?sizes=30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pepperoni")

	w = app.do(t, http.MethodGet, "/public/categories?sizes=40", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Pepperoni")
}

func TestErrorResponses(t *testing.T) {
	app := setupTestApp(t)

	// Unknown product: 404 with an error body
	w := app.do(t, http.MethodGet, "/public/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	// Malformed ID: 400
	w = app.do(t, http.MethodGet, "/public/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate category name: 400 conflict
	w = app.do(t, http.MethodPost, "/admin/categories", gin.H{"name": "Pizzas"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do(t, http.MethodPost, "/admin/categories", gin.H{"name": "Pizzas"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestDeleteCategoryGuardOverHTTP(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, http.MethodPost, "/admin/categories", gin.H{"name": "Pizzas"})
	require.Equal(t, http.StatusCreated, w.Code)
	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = app.do(t, http.MethodPost, "/admin/products", gin.H{
		"name":       "Margherita",
		"imageUrl":   "/img/margherita.png",
		"categoryId": category.ID,
		"isPizza":    true,
		"items":      []gin.H{{"price": 9, "size": 20, "pizzaType": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodDelete, "/admin/categories/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete category with products")
}
