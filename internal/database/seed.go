package database

import (
	"time"

	"github.com/udex/lapizza-api/internal/models"
	"github.com/udex/lapizza-api/internal/pricing"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

// Seed fills an empty database with a starting catalog and two accounts
// (one USER, one ADMIN). The default password for both is "111111".
func Seed(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("111111"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	users := []models.User{
		{FullName: "Yura UDEX", Email: "yura@udex.app", Password: string(hashed), Role: models.RoleUser, Verified: &now},
		{FullName: "Admin Yura", Email: "yuraAdmin@udex.app", Password: string(hashed), Role: models.RoleAdmin, Verified: &now},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Pizzas"},
		{Name: "Breakfast"},
		{Name: "Snacks"},
		{Name: "Cocktails"},
		{Name: "Drinks"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	ingredients := []models.Ingredient{
		{Name: "Cheese border", Price: 3.5, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/99f5cb91225b4875bd06a26d2e842106.png"},
		{Name: "Creamy mozzarella", Price: 2, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/cdea869ef287426386ed634e6099a5ba.png"},
		{Name: "Cheddar and parmesan", Price: 2, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/000D3A22FA54A81411E9AFA69C1FE796"},
		{Name: "Spicy jalapeno", Price: 1.5, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/11ee95b6bfdf98fb88a113db92d7b3df.png"},
		{Name: "Tender chicken", Price: 2.5, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/000D3A39D824A82E11E9AFA5B328D35A"},
		{Name: "Champignons", Price: 1.5, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/000D3A22FA54A81411E9AFA67259A324"},
		{Name: "Bacon", Price: 2.5, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/000D3A39D824A82E11E9AFA637AAB68F"},
		{Name: "Fresh tomatoes", Price: 1.5, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/000D3A39D824A82E11E9AFA7AC1A1D67"},
		{Name: "Pickles", Price: 1, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/000D3A21DA51A81211E9EA89958D782B"},
		{Name: "Italian herbs", Price: 1, ImageURL: "https://cdn.dodostatic.net/static/Img/Ingredients/370dac9ed21e4bfe9a91e2270777a42d.png"},
	}
	if err := db.Create(&ingredients).Error; err != nil {
		return err
	}

	pizzas := []models.Product{
		{Name: "Pepperoni Fresh", ImageURL: "https://media.dodostatic.net/image/r:233x233/11EE7D61304FAF5A98A6958F2BB2D260.webp", CategoryID: categories[0].ID, Ingredients: ingredients[0:5]},
		{Name: "Cheese", ImageURL: "https://media.dodostatic.net/image/r:233x233/11EE7D610CF7E265B7C72BE5AE757CA7.webp", CategoryID: categories[0].ID, Ingredients: ingredients[5:10]},
		{Name: "Chorizo Fresh", ImageURL: "https://media.dodostatic.net/image/r:584x584/11EE7D61706D472F9A5D71EB94149304.webp", CategoryID: categories[0].ID, Ingredients: ingredients[2:8]},
	}
	if err := db.Create(&pizzas).Error; err != nil {
		return err
	}

	var items []models.ProductItem
	for _, pizza := range pizzas {
		for _, pizzaType := range []int{pricing.TypeThin, pricing.TypeTraditional} {
			for _, size := range []int{pricing.SizeSmall, pricing.SizeMedium, pricing.SizeLarge} {
				items = append(items, models.ProductItem{
					ProductID: pizza.ID,
					Price:     float64(10 + size/2 + pizzaType*2),
					Size:      intPtr(size),
					PizzaType: intPtr(pizzaType),
				})
			}
		}
	}

	regulars := []models.Product{
		{Name: "Omelette with bacon", ImageURL: "https://media.dodostatic.net/image/r:233x233/11EE94ECD8B7345B9D510C1D2A9B96B8.avif", CategoryID: categories[1].ID},
		{Name: "Dodster", ImageURL: "https://media.dodostatic.net/image/r:292x292/11EE796F96D11392A2F6DD73599921B9.avif", CategoryID: categories[2].ID},
		{Name: "Orange juice", ImageURL: "https://media.dodostatic.net/image/r:292x292/11EE796FA1F50BC7A33A659C10EC1CE7.avif", CategoryID: categories[4].ID},
	}
	if err := db.Create(&regulars).Error; err != nil {
		return err
	}
	for i, product := range regulars {
		items = append(items, models.ProductItem{ProductID: product.ID, Price: float64(5 + i*2)})
	}

	return db.Create(&items).Error
}

// SeedIfEmpty seeds the database only when no products exist yet.
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return nil
	}
	log.Info("Database is empty, seeding initial data")
	return Seed(db)
}

// Reset truncates all domain tables and reseeds, inside one transaction.
func Reset(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		tables := []string{
			"cart_item_ingredients",
			"cart_items",
			"carts",
			"orders",
			"verification_codes",
			"product_ingredients",
			"product_items",
			"products",
			"ingredients",
			"categories",
			"users",
		}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return Seed(tx)
	})
}
