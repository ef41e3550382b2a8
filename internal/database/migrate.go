package database

import (
	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.VerificationCode{},
		&models.Category{},
		&models.Product{},
		&models.ProductItem{},
		&models.Ingredient{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	)
}
