package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

func floatptr(v float64) *float64 {
	return &v
}

// seedCatalog sets up two pizzas and a drink:
//   - Pepperoni: 30cm thin for 12, 40cm thin for 16, topped with cheese
//   - Margherita: 20cm traditional for 9, topped with basil
//   - Cola: one plain variant for 2.5
func seedCatalog(t *testing.T, db *gorm.DB) (cheese, basil models.Ingredient) {
	service := NewProductService(db)
	pizzas := createTestCategory(t, db, "Pizzas")
	drinks := createTestCategory(t, db, "Drinks")
	cheese = createTestIngredient(t, db, "Cheese", 2)
	basil = createTestIngredient(t, db, "Basil", 1)

	_, err := service.CreateProduct(ProductInput{
		Name:       "Pepperoni",
		ImageURL:   "/img/pepperoni.png",
		CategoryID: pizzas.ID,
		IsPizza:    true,
		Items: []ProductItemInput{
			{Price: 12, Size: intptr(30), PizzaType: intptr(1)},
			{Price: 16, Size: intptr(40), PizzaType: intptr(1)},
		},
		Ingredients: []IngredientRef{{ID: cheese.ID}},
	})
	require.NoError(t, err)

	_, err = service.CreateProduct(ProductInput{
		Name:        "Margherita",
		ImageURL:    "/img/margherita.png",
		CategoryID:  pizzas.ID,
		IsPizza:     true,
		Items:       []ProductItemInput{{Price: 9, Size: intptr(20), PizzaType: intptr(2)}},
		Ingredients: []IngredientRef{{ID: basil.ID}},
	})
	require.NoError(t, err)

	_, err = service.CreateProduct(ProductInput{
		Name:       "Cola",
		ImageURL:   "/img/cola.png",
		CategoryID: drinks.ID,
		Items:      []ProductItemInput{{Price: 2.5}},
	})
	require.NoError(t, err)
	return cheese, basil
}

func productNames(categories []models.Category) []string {
	var names []string
	for _, category := range categories {
		for _, product := range category.Products {
			names = append(names, product.Name)
		}
	}
	return names
}

func TestGetCategoriesUnfiltered(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	service := NewCatalogService(db)

	categories, err := service.GetCategories(CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.ElementsMatch(t, []string{"Pepperoni", "Margherita", "Cola"}, productNames(categories))

	// Variants come back ordered by price
	for _, category := range categories {
		for _, product := range category.Products {
			for i := 1; i < len(product.Items); i++ {
				assert.LessOrEqual(t, product.Items[i-1].Price, product.Items[i].Price)
			}
		}
	}
}

func TestGetCategoriesFilterBySize(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	service := NewCatalogService(db)

	categories, err := service.GetCategories(CatalogFilter{Sizes: []int{40}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pepperoni"}, productNames(categories))
}

func TestGetCategoriesFilterByIngredient(t *testing.T) {
	db := setupTestDB(t)
	_, basil := seedCatalog(t, db)
	service := NewCatalogService(db)

	categories, err := service.GetCategories(CatalogFilter{Ingredients: []int{basil.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Margherita"}, productNames(categories))
}

func TestGetCategoriesFilterByPriceRange(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	service := NewCatalogService(db)

	categories, err := service.GetCategories(CatalogFilter{
		PriceFrom: floatptr(8),
		PriceTo:   floatptr(13),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Pepperoni", "Margherita"}, productNames(categories))

	// A band nothing falls into leaves categories empty but present
	categories, err = service.GetCategories(CatalogFilter{
		PriceFrom: floatptr(100),
	})
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Empty(t, productNames(categories))
}

func TestGetCategoriesCombinedFilters(t *testing.T) {
	db := setupTestDB(t)
	cheese, _ := seedCatalog(t, db)
	service := NewCatalogService(db)

	// Size and ingredient constraints must both hold
	categories, err := service.GetCategories(CatalogFilter{
		Sizes:       []int{30},
		Ingredients: []int{cheese.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pepperoni"}, productNames(categories))

	categories, err = service.GetCategories(CatalogFilter{
		Sizes:       []int{20},
		Ingredients: []int{cheese.ID},
	})
	require.NoError(t, err)
	assert.Empty(t, productNames(categories))
}
