package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

func createTestVariant(t *testing.T, db *gorm.DB, price float64) models.ProductItem {
	category := models.Category{Name: "Pizzas"}
	if err := db.Where("name = ?", category.Name).First(&category).Error; err != nil {
		require.NoError(t, db.Create(&category).Error)
	}
	product := models.Product{Name: "Pepperoni", ImageURL: "/img/p.png", CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)
	item := models.ProductItem{Price: price, Size: intptr(30), PizzaType: intptr(1), ProductID: product.ID}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestGetCartCreatesOnFirstUse(t *testing.T) {
	db := setupTestDB(t)
	service := NewCartService(db)

	cart, err := service.GetCart("fresh-token")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cart.Token)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)

	// Same token returns the same cart
	again, err := service.GetCart("fresh-token")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	_, err = service.GetCart("")
	require.Error(t, err)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAddItemMergesMatchingLines(t *testing.T) {
	db := setupTestDB(t)
	service := NewCartService(db)
	variant := createTestVariant(t, db, 10)
	cheese := createTestIngredient(t, db, "Cheese", 2)
	bacon := createTestIngredient(t, db, "Bacon", 3)

	cart, err := service.AddItem("token", AddCartItemInput{
		ProductItemID: variant.ID,
		IngredientIDs: []int{cheese.ID, bacon.ID},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 15.0, cart.TotalAmount)

	// Same variant, same toppings in a different order: quantity bumps
	cart, err = service.AddItem("token", AddCartItemInput{
		ProductItemID: variant.ID,
		IngredientIDs: []int{bacon.ID, cheese.ID},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 30.0, cart.TotalAmount)

	// A different topping set gets its own line
	cart, err = service.AddItem("token", AddCartItemInput{
		ProductItemID: variant.ID,
		IngredientIDs: []int{cheese.ID},
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 42.0, cart.TotalAmount)
}

func TestAddItemUnknownVariant(t *testing.T) {
	db := setupTestDB(t)
	service := NewCartService(db)

	_, err := service.AddItem("token", AddCartItemInput{ProductItemID: 999})
	require.Error(t, err)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	service := NewCartService(db)
	variant := createTestVariant(t, db, 10)

	cart, err := service.AddItem("token", AddCartItemInput{ProductItemID: variant.ID})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = service.UpdateItemQuantity("token", cart.Items[0].ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, 40.0, cart.TotalAmount)

	_, err = service.UpdateItemQuantity("token", cart.Items[0].ID, 0)
	require.Error(t, err)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = service.UpdateItemQuantity("token", 999, 2)
	require.Error(t, err)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestRemoveItemRecalculatesTotal(t *testing.T) {
	db := setupTestDB(t)
	service := NewCartService(db)
	variant := createTestVariant(t, db, 10)
	other := createTestVariant(t, db, 6)

	cart, err := service.AddItem("token", AddCartItemInput{ProductItemID: variant.ID})
	require.NoError(t, err)
	cart, err = service.AddItem("token", AddCartItemInput{ProductItemID: other.ID})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 16.0, cart.TotalAmount)

	cart, err = service.RemoveItem("token", cart.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 6.0, cart.TotalAmount)

	// Another visitor's cart cannot reach this line
	_, err = service.RemoveItem("other-token", cart.Items[0].ID)
	require.Error(t, err)
	var notFoundErr *models.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
