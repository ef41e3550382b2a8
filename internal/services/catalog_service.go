package services

import (
	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// CatalogFilter narrows the storefront catalog: products must have a variant
// matching the size/type/price constraints and carry one of the requested
// ingredients. Empty fields mean "no constraint".
type CatalogFilter struct {
	Sizes       []int
	PizzaTypes  []int
	Ingredients []int
	PriceFrom   *float64
	PriceTo     *float64
}

func (f CatalogFilter) empty() bool {
	return len(f.Sizes) == 0 && len(f.PizzaTypes) == 0 && len(f.Ingredients) == 0 &&
		f.PriceFrom == nil && f.PriceTo == nil
}

// CatalogService serves the read-only storefront views.
type CatalogService interface {
	// GetCategories returns all categories with their matching products,
	// including variants and ingredients.
	GetCategories(filter CatalogFilter) ([]models.Category, error)
}

type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) GetCategories(filter CatalogFilter) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return s.applyFilter(db.Order("products.id"), filter)
		}).
		Preload("Products.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_items.price")
		}).
		Preload("Products.Ingredients").
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *catalogService) applyFilter(db *gorm.DB, filter CatalogFilter) *gorm.DB {
	if filter.empty() {
		return db
	}

	if len(filter.Ingredients) > 0 {
		sub := s.db.Table("product_ingredients").
			Select("product_id").
			Where("ingredient_id IN ?", filter.Ingredients)
		db = db.Where("products.id IN (?)", sub)
	}

	itemSub := s.db.Table("product_items").Select("product_id")
	constrained := false
	if len(filter.Sizes) > 0 {
		itemSub = itemSub.Where("size IN ?", filter.Sizes)
		constrained = true
	}
	if len(filter.PizzaTypes) > 0 {
		itemSub = itemSub.Where("pizza_type IN ?", filter.PizzaTypes)
		constrained = true
	}
	if filter.PriceFrom != nil {
		itemSub = itemSub.Where("price >= ?", *filter.PriceFrom)
		constrained = true
	}
	if filter.PriceTo != nil {
		itemSub = itemSub.Where("price <= ?", *filter.PriceTo)
		constrained = true
	}
	if constrained {
		db = db.Where("products.id IN (?)", itemSub)
	}
	return db
}
