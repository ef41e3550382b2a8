package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udex/lapizza-api/internal/models"
)

func TestCreateIngredient(t *testing.T) {
	db := setupTestDB(t)
	service := NewIngredientService(db)

	ingredient, err := service.CreateIngredient(IngredientInput{
		Name:     "Mozzarella",
		Price:    2.5,
		ImageURL: "/img/mozzarella.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mozzarella", ingredient.Name)

	// Free toppings are allowed, negative prices are not
	_, err = service.CreateIngredient(IngredientInput{Name: "Oregano", Price: 0, ImageURL: "/img/oregano.png"})
	assert.NoError(t, err)

	_, err = service.CreateIngredient(IngredientInput{Name: "Broken", Price: -1, ImageURL: "/img/broken.png"})
	require.Error(t, err)
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = service.CreateIngredient(IngredientInput{Name: "Mozzarella", Price: 3, ImageURL: "/img/mozzarella.png"})
	require.Error(t, err)
	var conflictErr *models.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestDeleteIngredientInUse(t *testing.T) {
	db := setupTestDB(t)
	service := NewIngredientService(db)
	category := createTestCategory(t, db, "Pizzas")
	cheese := createTestIngredient(t, db, "Cheese", 2)

	product := models.Product{Name: "Pepperoni", ImageURL: "/img/p.png", CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Model(&product).Association("Ingredients").Append(&cheese))

	err := service.DeleteIngredient(cheese.ID)
	require.Error(t, err)
	var conflictErr *models.ConflictError
	assert.ErrorAs(t, err, &conflictErr)

	require.NoError(t, db.Model(&product).Association("Ingredients").Clear())
	assert.NoError(t, service.DeleteIngredient(cheese.ID))
}

func TestUpdateIngredient(t *testing.T) {
	db := setupTestDB(t)
	service := NewIngredientService(db)
	cheese := createTestIngredient(t, db, "Cheese", 2)
	createTestIngredient(t, db, "Bacon", 3)

	updated, err := service.UpdateIngredient(cheese.ID, IngredientInput{
		Name:     "Cheddar",
		Price:    2.8,
		ImageURL: "/img/cheddar.png",
	})
	require.NoError(t, err)

	var stored models.Ingredient
	require.NoError(t, db.First(&stored, updated.ID).Error)
	assert.Equal(t, "Cheddar", stored.Name)
	assert.Equal(t, 2.8, stored.Price)

	// Renaming onto another ingredient's name conflicts
	_, err = service.UpdateIngredient(cheese.ID, IngredientInput{Name: "Bacon", Price: 2, ImageURL: "/img/x.png"})
	require.Error(t, err)
	var conflictErr *models.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}
