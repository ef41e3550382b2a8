package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductItem{},
		&models.Ingredient{},
		&models.User{},
		&models.VerificationCode{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	)
	require.NoError(t, err)

	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestIngredient(t *testing.T, db *gorm.DB, name string, price float64) models.Ingredient {
	ingredient := models.Ingredient{Name: name, Price: price, ImageURL: "/img/" + name + ".png"}
	require.NoError(t, db.Create(&ingredient).Error)
	return ingredient
}

func intptr(v int) *int {
	return &v
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		isPizza bool
		items   []ProductItemInput
		wantErr string
	}{
		{
			name:    "pizza with no items",
			isPizza: true,
			items:   nil,
			wantErr: "Pizza must have at least one item",
		},
		{
			name:    "regular with no items",
			isPizza: false,
			items:   nil,
			wantErr: "Regular product must have exactly one item",
		},
		{
			name:    "zero price rejected",
			isPizza: true,
			items:   []ProductItemInput{{Price: 0, Size: intptr(30), PizzaType: intptr(1)}},
			wantErr: "Valid price is required for all items",
		},
		{
			name:    "regular with two items",
			isPizza: false,
			items:   []ProductItemInput{{Price: 5}, {Price: 6}},
			wantErr: "Regular product must have exactly one item",
		},
		{
			name:    "regular with size set",
			isPizza: false,
			items:   []ProductItemInput{{Price: 5, Size: intptr(30)}},
			wantErr: "Regular product cannot have size or pizzaType",
		},
		{
			name:    "valid pizza variants",
			isPizza: true,
			items: []ProductItemInput{
				{Price: 10, Size: intptr(20), PizzaType: intptr(1)},
				{Price: 14, Size: intptr(30), PizzaType: intptr(2)},
			},
		},
		{
			name:    "valid regular product",
			isPizza: false,
			items:   []ProductItemInput{{Price: 3.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems(tt.isPizza, tt.items)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestCreateRegularProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Drinks")

	product, err := service.CreateProduct(ProductInput{
		Name:       "Cola",
		ImageURL:   "/img/cola.png",
		CategoryID: category.ID,
		Items:      []ProductItemInput{{Price: 2.5}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Cola", product.Name)
	require.Len(t, product.Items, 1)
	assert.Equal(t, 2.5, product.Items[0].Price)
	assert.Nil(t, product.Items[0].Size)
	assert.Nil(t, product.Items[0].PizzaType)
	assert.Empty(t, product.Ingredients)
}

func TestCreatePizzaWithIngredients(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Pizzas")
	cheese := createTestIngredient(t, db, "Cheese", 2)
	bacon := createTestIngredient(t, db, "Bacon", 3)

	product, err := service.CreateProduct(ProductInput{
		Name:       "Pepperoni",
		ImageURL:   "/img/pepperoni.png",
		CategoryID: category.ID,
		IsPizza:    true,
		Items: []ProductItemInput{
			{Price: 10, Size: intptr(20), PizzaType: intptr(1)},
			{Price: 14, Size: intptr(30), PizzaType: intptr(1)},
		},
		Ingredients: []IngredientRef{{ID: cheese.ID}, {ID: bacon.ID}},
	})
	require.NoError(t, err)

	assert.Len(t, product.Items, 2)
	assert.Len(t, product.Ingredients, 2)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)

	_, err := service.CreateProduct(ProductInput{
		Name:       "Orphan",
		ImageURL:   "/img/orphan.png",
		CategoryID: 999,
		Items:      []ProductItemInput{{Price: 5}},
	})
	require.Error(t, err)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateProductUnknownIngredientRollsBack(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Pizzas")

	_, err := service.CreateProduct(ProductInput{
		Name:       "Ghost",
		ImageURL:   "/img/ghost.png",
		CategoryID: category.ID,
		IsPizza:    true,
		Items:      []ProductItemInput{{Price: 10, Size: intptr(20), PizzaType: intptr(1)}},
		Ingredients: []IngredientRef{
			{ID: 12345},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "Some ingredients do not exist", err.Error())

	// The whole transaction rolls back: no product or variant row survives
	var products, items int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.ProductItem{}).Count(&items).Error)
	assert.Zero(t, products)
	assert.Zero(t, items)
}

func TestUpdateProductReconcilesItems(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Pizzas")

	product, err := service.CreateProduct(ProductInput{
		Name:       "Margherita",
		ImageURL:   "/img/margherita.png",
		CategoryID: category.ID,
		IsPizza:    true,
		Items: []ProductItemInput{
			{Price: 10, Size: intptr(20), PizzaType: intptr(1)},
			{Price: 14, Size: intptr(30), PizzaType: intptr(1)},
			{Price: 18, Size: intptr(40), PizzaType: intptr(1)},
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Items, 3)

	keptID := product.Items[0].ID
	droppedID := product.Items[2].ID

	// Keep the first variant with a new price, drop the others, add one new
	updated, err := service.UpdateProduct(product.ID, ProductInput{
		Name:       "Margherita",
		ImageURL:   "/img/margherita.png",
		CategoryID: category.ID,
		IsPizza:    true,
		Items: []ProductItemInput{
			{ID: keptID, Price: 11, Size: intptr(20), PizzaType: intptr(1)},
			{Price: 16, Size: intptr(30), PizzaType: intptr(2)},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)

	byID := make(map[int]models.ProductItem)
	for _, item := range updated.Items {
		byID[item.ID] = item
	}

	// The matched row kept its identity and took the new price
	kept, ok := byID[keptID]
	require.True(t, ok, "updated variant should keep its row")
	assert.Equal(t, 11.0, kept.Price)

	// The stale row is gone
	var stale models.ProductItem
	err = db.First(&stale, droppedID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateProductSameItemsKeepsIDs(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Pizzas")

	product, err := service.CreateProduct(ProductInput{
		Name:       "Hawaiian",
		ImageURL:   "/img/hawaiian.png",
		CategoryID: category.ID,
		IsPizza:    true,
		Items: []ProductItemInput{
			{Price: 10, Size: intptr(20), PizzaType: intptr(1)},
			{Price: 14, Size: intptr(30), PizzaType: intptr(1)},
		},
	})
	require.NoError(t, err)

	var before []int
	items := make([]ProductItemInput, 0, len(product.Items))
	for _, item := range product.Items {
		before = append(before, item.ID)
		items = append(items, ProductItemInput{ID: item.ID, Price: item.Price, Size: item.Size, PizzaType: item.PizzaType})
	}

	// Resubmitting the same variants must not churn rows
	updated, err := service.UpdateProduct(product.ID, ProductInput{
		Name:       "Hawaiian",
		ImageURL:   "/img/hawaiian.png",
		CategoryID: category.ID,
		IsPizza:    true,
		Items:      items,
	})
	require.NoError(t, err)

	var after []int
	for _, item := range updated.Items {
		after = append(after, item.ID)
	}
	assert.ElementsMatch(t, before, after)
}

func TestUpdateProductReplacesIngredients(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Pizzas")
	cheese := createTestIngredient(t, db, "Cheese", 2)
	bacon := createTestIngredient(t, db, "Bacon", 3)

	product, err := service.CreateProduct(ProductInput{
		Name:        "Carbonara",
		ImageURL:    "/img/carbonara.png",
		CategoryID:  category.ID,
		IsPizza:     true,
		Items:       []ProductItemInput{{Price: 12, Size: intptr(30), PizzaType: intptr(1)}},
		Ingredients: []IngredientRef{{ID: cheese.ID}, {ID: bacon.ID}},
	})
	require.NoError(t, err)
	require.Len(t, product.Ingredients, 2)

	// An absent ingredient list wipes the association
	updated, err := service.UpdateProduct(product.ID, ProductInput{
		Name:       "Carbonara",
		ImageURL:   "/img/carbonara.png",
		CategoryID: category.ID,
		IsPizza:    true,
		Items:      []ProductItemInput{{ID: product.Items[0].ID, Price: 12, Size: intptr(30), PizzaType: intptr(1)}},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Ingredients)
}

func TestDeleteProductInCart(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Drinks")

	product, err := service.CreateProduct(ProductInput{
		Name:       "Juice",
		ImageURL:   "/img/juice.png",
		CategoryID: category.ID,
		Items:      []ProductItemInput{{Price: 3}},
	})
	require.NoError(t, err)

	cart := models.Cart{Token: "cart-token"}
	require.NoError(t, db.Create(&cart).Error)
	line := models.CartItem{CartID: cart.ID, ProductItemID: product.Items[0].ID, Quantity: 1}
	require.NoError(t, db.Create(&line).Error)

	err = service.DeleteProduct(product.ID)
	require.Error(t, err)

	var conflictErr *models.ConflictError
	assert.ErrorAs(t, err, &conflictErr)

	// Dropping the cart line lifts the guard
	require.NoError(t, db.Delete(&models.CartItem{}, line.ID).Error)
	require.NoError(t, service.DeleteProduct(product.ID))

	var items int64
	require.NoError(t, db.Model(&models.ProductItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestSearchProducts(t *testing.T) {
	db := setupTestDB(t)
	service := NewProductService(db)
	category := createTestCategory(t, db, "Pizzas")

	for _, name := range []string{"Pepperoni", "Pepperoni Fresh", "Margherita"} {
		_, err := service.CreateProduct(ProductInput{
			Name:       name,
			ImageURL:   "/img/p.png",
			CategoryID: category.ID,
			IsPizza:    true,
			Items:      []ProductItemInput{{Price: 10, Size: intptr(30), PizzaType: intptr(1)}},
		})
		require.NoError(t, err)
	}

	found, err := service.SearchProducts("pepper", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = service.SearchProducts("pepper", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
